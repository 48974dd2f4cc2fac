package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avc/smm-panel/internal/domain"
)

func depositRows(tx *domain.Transaction) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"transaction_id", "user_id", "type", "amount", "equities", "status", "reference",
		"proof_image", "sender_name", "sender_account", "transfer_date", "verified_by",
		"verified_at", "reason", "created_at",
	}).AddRow(
		tx.TransactionID, tx.UserID, tx.Type, tx.Amount, tx.Equities, tx.Status, tx.Reference,
		tx.ProofImage, tx.SenderName, tx.SenderAccount, tx.TransferDate, tx.VerifiedBy,
		tx.VerifiedAt, tx.Reason, tx.CreatedAt,
	)
}

func TestTransactionRepository_CreateTransaction(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepository(mock)
	ctx := context.Background()

	t.Run("Success - deposit", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO transactions`).
			WithArgs("TXN1", int64(1), domain.TransactionTypeDeposit, 1000.0, int64(100),
				domain.TransactionStatusPending, "EQREF1").
			WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

		err := repo.CreateTransaction(ctx, &domain.Transaction{
			TransactionID: "TXN1",
			UserID:        1,
			Type:          domain.TransactionTypeDeposit,
			Amount:        1000.0,
			Equities:      100,
			Status:        domain.TransactionStatusPending,
			Reference:     "EQREF1",
		})
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO transactions`).
			WithArgs("TXN2", int64(1), domain.TransactionTypeOrder, 250.0, int64(25),
				domain.TransactionStatusCompleted, "ORD1").
			WillReturnError(errors.New("database error"))

		err := repo.CreateTransaction(ctx, &domain.Transaction{
			TransactionID: "TXN2",
			UserID:        1,
			Type:          domain.TransactionTypeOrder,
			Amount:        250.0,
			Equities:      25,
			Status:        domain.TransactionStatusCompleted,
			Reference:     "ORD1",
		})
		assert.Error(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransactionRepository_GetPendingDeposit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepository(mock)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		deposit := &domain.Transaction{
			TransactionID: "TXN1",
			UserID:        1,
			Type:          domain.TransactionTypeDeposit,
			Amount:        1000.0,
			Equities:      100,
			Status:        domain.TransactionStatusPending,
			Reference:     "EQREF1",
			CreatedAt:     time.Now(),
		}

		mock.ExpectQuery(`SELECT .+ FROM transactions WHERE transaction_id`).
			WithArgs("TXN1", domain.TransactionTypeDeposit, domain.TransactionStatusPending).
			WillReturnRows(depositRows(deposit))

		tx, err := repo.GetPendingDeposit(ctx, "TXN1")
		require.NoError(t, err)
		assert.Equal(t, deposit.Equities, tx.Equities)
		assert.Equal(t, domain.TransactionStatusPending, tx.Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already resolved - not found", func(t *testing.T) {
		// Решенный депозит не проходит фильтр по статусу —
		// повторное подтверждение не находит строку
		mock.ExpectQuery(`SELECT .+ FROM transactions WHERE transaction_id`).
			WithArgs("TXN1", domain.TransactionTypeDeposit, domain.TransactionStatusPending).
			WillReturnError(pgx.ErrNoRows)

		tx, err := repo.GetPendingDeposit(ctx, "TXN1")
		assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
		assert.Nil(t, tx)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransactionRepository_AttachProof(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepository(mock)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE transactions`).
			WithArgs("receipt.jpg", "Chidi O", "0123456789", "2026-08-30",
				"TXN1", int64(1), domain.TransactionTypeDeposit, domain.TransactionStatusPending).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.AttachProof(ctx, "TXN1", 1, "receipt.jpg", "Chidi O", "0123456789", "2026-08-30")
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not owned by caller", func(t *testing.T) {
		mock.ExpectExec(`UPDATE transactions`).
			WithArgs("receipt.jpg", "Chidi O", "0123456789", "2026-08-30",
				"TXN1", int64(2), domain.TransactionTypeDeposit, domain.TransactionStatusPending).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.AttachProof(ctx, "TXN1", 2, "receipt.jpg", "Chidi O", "0123456789", "2026-08-30")
		assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransactionRepository_ResolveDeposit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepository(mock)
	ctx := context.Background()

	t.Run("Approve", func(t *testing.T) {
		mock.ExpectExec(`UPDATE transactions`).
			WithArgs(domain.TransactionStatusCompleted, "admin", "",
				"TXN1", domain.TransactionTypeDeposit, domain.TransactionStatusPending).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.ResolveDeposit(ctx, "TXN1", domain.TransactionStatusCompleted, "admin", "")
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Reject with reason", func(t *testing.T) {
		mock.ExpectExec(`UPDATE transactions`).
			WithArgs(domain.TransactionStatusCancelled, "admin", "no matching transfer",
				"TXN1", domain.TransactionTypeDeposit, domain.TransactionStatusPending).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.ResolveDeposit(ctx, "TXN1", domain.TransactionStatusCancelled, "admin", "no matching transfer")
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Second resolve attempt - not found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE transactions`).
			WithArgs(domain.TransactionStatusCompleted, "admin", "",
				"TXN1", domain.TransactionTypeDeposit, domain.TransactionStatusPending).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.ResolveDeposit(ctx, "TXN1", domain.TransactionStatusCompleted, "admin", "")
		assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransactionRepository_ListPendingDeposits(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepository(mock)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT`).
			WithArgs(domain.TransactionTypeDeposit, domain.TransactionStatusPending).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))

		deposit := &domain.Transaction{
			TransactionID: "TXN1",
			UserID:        1,
			Type:          domain.TransactionTypeDeposit,
			Amount:        1000.0,
			Equities:      100,
			Status:        domain.TransactionStatusPending,
			CreatedAt:     time.Now(),
		}
		mock.ExpectQuery(`SELECT .+ FROM transactions`).
			WithArgs(domain.TransactionTypeDeposit, domain.TransactionStatusPending, int64(20), int64(0)).
			WillReturnRows(depositRows(deposit))

		deposits, total, err := repo.ListPendingDeposits(ctx, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, deposits, 1)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
