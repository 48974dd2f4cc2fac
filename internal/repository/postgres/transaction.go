package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/avc/smm-panel/internal/domain"
)

const transactionColumns = `transaction_id, user_id, type, amount, equities, status, reference,
	 proof_image, sender_name, sender_account, transfer_date, verified_by, verified_at,
	 reason, created_at`

// TransactionRepository реализует domain.TransactionRepository
type TransactionRepository struct {
	db DBTX
}

// NewTransactionRepository создает новый TransactionRepository
func NewTransactionRepository(db DBTX) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	tx := &domain.Transaction{}
	err := row.Scan(
		&tx.TransactionID, &tx.UserID, &tx.Type, &tx.Amount, &tx.Equities,
		&tx.Status, &tx.Reference, &tx.ProofImage, &tx.SenderName,
		&tx.SenderAccount, &tx.TransferDate, &tx.VerifiedBy, &tx.VerifiedAt,
		&tx.Reason, &tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// CreateTransaction создает новую запись леджера
func (r *TransactionRepository) CreateTransaction(ctx context.Context, tx *domain.Transaction) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO transactions (transaction_id, user_id, type, amount, equities, status, reference)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		tx.TransactionID, tx.UserID, tx.Type, tx.Amount, tx.Equities, tx.Status, tx.Reference,
	).Scan(&tx.CreatedAt)

	if err != nil {
		return fmt.Errorf("repository: failed to create transaction for user %d: %w", tx.UserID, err)
	}

	return nil
}

// GetPendingDeposit получает депозит в статусе pending.
// Фильтр по статусу — защита от повторного подтверждения: уже решенный
// депозит здесь не находится.
func (r *TransactionRepository) GetPendingDeposit(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+transactionColumns+`
		 FROM transactions
		 WHERE transaction_id = $1 AND type = $2 AND status = $3`,
		transactionID, domain.TransactionTypeDeposit, domain.TransactionStatusPending)

	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("repository: failed to get pending deposit %q: %w", transactionID, err)
	}

	return tx, nil
}

// AttachProof прикрепляет подтверждение перевода к pending депозиту владельца.
// Статус не меняется, депозит продолжает ждать решения администратора.
func (r *TransactionRepository) AttachProof(ctx context.Context, transactionID string, userID int64, proofImage, senderName, senderAccount, transferDate string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE transactions
		 SET proof_image = $1, sender_name = $2, sender_account = $3, transfer_date = $4
		 WHERE transaction_id = $5 AND user_id = $6 AND type = $7 AND status = $8`,
		proofImage, senderName, senderAccount, transferDate,
		transactionID, userID, domain.TransactionTypeDeposit, domain.TransactionStatusPending)
	if err != nil {
		return fmt.Errorf("repository: failed to attach proof to deposit %q: %w", transactionID, err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// ResolveDeposit переводит pending депозит в completed или cancelled.
// WHERE по статусу гарантирует, что решение применяется ровно один раз:
// повторная попытка не находит строку.
func (r *TransactionRepository) ResolveDeposit(ctx context.Context, transactionID string, status domain.TransactionStatus, verifiedBy, reason string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE transactions
		 SET status = $1, verified_by = $2, verified_at = NOW(), reason = $3
		 WHERE transaction_id = $4 AND type = $5 AND status = $6`,
		status, verifiedBy, reason,
		transactionID, domain.TransactionTypeDeposit, domain.TransactionStatusPending)
	if err != nil {
		return fmt.Errorf("repository: failed to resolve deposit %q: %w", transactionID, err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// GetTransactionsByUserID получает страницу транзакций пользователя
func (r *TransactionRepository) GetTransactionsByUserID(ctx context.Context, userID, page, limit int64) ([]*domain.Transaction, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository: failed to count transactions for user %d: %w", userID, err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+transactionColumns+`
		 FROM transactions
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("repository: failed to get transactions for user %d: %w", userID, err)
	}
	defer rows.Close()

	transactions, err := collectTransactions(rows)
	if err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

// ListTransactions получает страницу всех транзакций
func (r *TransactionRepository) ListTransactions(ctx context.Context, page, limit int64) ([]*domain.Transaction, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository: failed to count transactions: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+transactionColumns+`
		 FROM transactions
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("repository: failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions, err := collectTransactions(rows)
	if err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

// ListPendingDeposits получает страницу депозитов, ожидающих решения
func (r *TransactionRepository) ListPendingDeposits(ctx context.Context, page, limit int64) ([]*domain.Transaction, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE type = $1 AND status = $2`,
		domain.TransactionTypeDeposit, domain.TransactionStatusPending).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository: failed to count pending deposits: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+transactionColumns+`
		 FROM transactions
		 WHERE type = $1 AND status = $2
		 ORDER BY created_at ASC
		 LIMIT $3 OFFSET $4`,
		domain.TransactionTypeDeposit, domain.TransactionStatusPending,
		limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("repository: failed to list pending deposits: %w", err)
	}
	defer rows.Close()

	transactions, err := collectTransactions(rows)
	if err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

func collectTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var transactions []*domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating transactions: %w", err)
	}

	return transactions, nil
}
