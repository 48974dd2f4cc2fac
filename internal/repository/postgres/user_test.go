package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avc/smm-panel/internal/domain"
)

func userRows(u *domain.User) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "username", "email", "phone", "password_hash", "balance", "total_spent",
		"total_orders", "referral_code", "referred_by", "referral_count",
		"referral_earnings", "role", "is_active", "created_at",
	}).AddRow(
		u.ID, u.Username, u.Email, u.Phone, u.PasswordHash, u.Balance, u.TotalSpent,
		u.TotalOrders, u.ReferralCode, u.ReferredBy, u.ReferralCount,
		u.ReferralEarnings, u.Role, u.IsActive, u.CreatedAt,
	)
}

func testUser() *domain.User {
	return &domain.User{
		ID:           1,
		Username:     "chidi",
		Email:        "chidi@example.com",
		PasswordHash: "hashed",
		ReferralCode: "ABC234",
		Role:         domain.RoleUser,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
}

func TestUserRepository_CreateUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		expected := testUser()

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(expected.Username, expected.Email, "", expected.PasswordHash,
				expected.ReferralCode, "", domain.RoleUser).
			WillReturnRows(userRows(expected))

		user, err := repo.CreateUser(ctx, &domain.User{
			Username:     expected.Username,
			Email:        expected.Email,
			PasswordHash: expected.PasswordHash,
			ReferralCode: expected.ReferralCode,
			Role:         domain.RoleUser,
		})
		require.NoError(t, err)
		assert.Equal(t, expected.ID, user.ID)
		assert.Equal(t, expected.Username, user.Username)
		assert.Equal(t, int64(0), user.Balance)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("User already exists", func(t *testing.T) {
		expected := testUser()

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(expected.Username, expected.Email, "", expected.PasswordHash,
				expected.ReferralCode, "", domain.RoleUser).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		user, err := repo.CreateUser(ctx, &domain.User{
			Username:     expected.Username,
			Email:        expected.Email,
			PasswordHash: expected.PasswordHash,
			ReferralCode: expected.ReferralCode,
			Role:         domain.RoleUser,
		})
		assert.ErrorIs(t, err, domain.ErrUserExists)
		assert.Nil(t, user)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		expected := testUser()

		mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
			WithArgs(expected.Email).
			WillReturnRows(userRows(expected))

		user, err := repo.GetUserByEmail(ctx, expected.Email)
		require.NoError(t, err)
		assert.Equal(t, expected.Username, user.Username)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("User not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
			WithArgs("missing@example.com").
			WillReturnError(pgx.ErrNoRows)

		user, err := repo.GetUserByEmail(ctx, "missing@example.com")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.Nil(t, user)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetUserByReferralCode(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		expected := testUser()

		mock.ExpectQuery(`SELECT .+ FROM users WHERE referral_code`).
			WithArgs(expected.ReferralCode).
			WillReturnRows(userRows(expected))

		user, err := repo.GetUserByReferralCode(ctx, expected.ReferralCode)
		require.NoError(t, err)
		assert.Equal(t, expected.ID, user.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Code does not resolve", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM users WHERE referral_code`).
			WithArgs("NOSUCH").
			WillReturnError(pgx.ErrNoRows)

		user, err := repo.GetUserByReferralCode(ctx, "NOSUCH")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.Nil(t, user)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_AdjustBalance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	ctx := context.Background()

	t.Run("Credit", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET balance = balance`).
			WithArgs(int64(100), int64(1)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.AdjustBalance(ctx, 1, 100)
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Debit", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET balance = balance`).
			WithArgs(int64(-50), int64(1)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.AdjustBalance(ctx, 1, -50)
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("User not found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET balance = balance`).
			WithArgs(int64(100), int64(999)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.AdjustBalance(ctx, 999, 100)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_ApplyOrderDebit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users`).
			WithArgs(int64(25), int64(1)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.ApplyOrderDebit(ctx, 1, 25)
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users`).
			WithArgs(int64(25), int64(1)).
			WillReturnError(errors.New("database error"))

		err := repo.ApplyOrderDebit(ctx, 1, 25)
		assert.Error(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_CreditReferral(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users`).
			WithArgs(int64(20), int64(2)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.CreditReferral(ctx, 2, 20)
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Referrer not found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users`).
			WithArgs(int64(20), int64(999)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.CreditReferral(ctx, 999, 20)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
