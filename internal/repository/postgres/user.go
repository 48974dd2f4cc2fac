package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avc/smm-panel/internal/domain"
)

const userColumns = `id, username, email, phone, password_hash, balance, total_spent, total_orders,
	 referral_code, referred_by, referral_count, referral_earnings, role, is_active, created_at`

// UserRepository реализует domain.UserRepository
type UserRepository struct {
	db DBTX
}

// NewUserRepository создает новый UserRepository
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.Phone, &user.PasswordHash,
		&user.Balance, &user.TotalSpent, &user.TotalOrders,
		&user.ReferralCode, &user.ReferredBy, &user.ReferralCount, &user.ReferralEarnings,
		&user.Role, &user.IsActive, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser создает нового пользователя
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (username, email, phone, password_hash, referral_code, referred_by, role)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+userColumns,
		user.Username, user.Email, user.Phone, user.PasswordHash,
		user.ReferralCode, user.ReferredBy, user.Role,
	)

	created, err := scanUser(row)
	if err != nil {
		// Проверка на уникальность username/email/referral_code
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("repository: failed to create user %q: %w", user.Username, err)
	}

	return created, nil
}

// GetUserByID получает пользователя по ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("repository: failed to get user by id %d: %w", id, err)
	}

	return user, nil
}

// GetUserByEmail получает пользователя по email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("repository: failed to get user by email %q: %w", email, err)
	}

	return user, nil
}

// GetUserByReferralCode получает пользователя по реферальному коду
func (r *UserRepository) GetUserByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE referral_code = $1`, code)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("repository: failed to get user by referral code %q: %w", code, err)
	}

	return user, nil
}

// UpdateProfile обновляет профиль пользователя
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, phone string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE users SET phone = $1 WHERE id = $2`, phone, id)
	if err != nil {
		return fmt.Errorf("repository: failed to update profile for user %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdatePassword обновляет хеш пароля пользователя
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("repository: failed to update password for user %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// AdjustBalance атомарно изменяет баланс пользователя на delta эквити.
// Проверка достаточности средств выполняется на уровне сервиса до вызова;
// последовательность проверка-списание не сериализуется.
func (r *UserRepository) AdjustBalance(ctx context.Context, id int64, delta int64) error {
	result, err := r.db.Exec(ctx,
		`UPDATE users SET balance = balance + $1 WHERE id = $2`, delta, id)
	if err != nil {
		return fmt.Errorf("repository: failed to adjust balance for user %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ApplyOrderDebit атомарно списывает стоимость заказа и обновляет счетчики
func (r *UserRepository) ApplyOrderDebit(ctx context.Context, id int64, cost int64) error {
	result, err := r.db.Exec(ctx,
		`UPDATE users
		 SET balance = balance - $1,
		     total_spent = total_spent + $1,
		     total_orders = total_orders + 1
		 WHERE id = $2`,
		cost, id)
	if err != nil {
		return fmt.Errorf("repository: failed to apply order debit for user %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// CreditReferral атомарно зачисляет реферальный бонус и обновляет счетчики реферера
func (r *UserRepository) CreditReferral(ctx context.Context, id int64, bonus int64) error {
	result, err := r.db.Exec(ctx,
		`UPDATE users
		 SET balance = balance + $1,
		     referral_earnings = referral_earnings + $1,
		     referral_count = referral_count + 1
		 WHERE id = $2`,
		bonus, id)
	if err != nil {
		return fmt.Errorf("repository: failed to credit referral for user %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ListUsers получает страницу пользователей и общее количество
func (r *UserRepository) ListUsers(ctx context.Context, page, limit int64) ([]*domain.User, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository: failed to count users: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("repository: failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repository: failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repository: error iterating users: %w", err)
	}

	return users, total, nil
}

// SetActive включает или выключает аккаунт (мягкая деактивация)
func (r *UserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	result, err := r.db.Exec(ctx,
		`UPDATE users SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("repository: failed to set active for user %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SetRole меняет роль пользователя
func (r *UserRepository) SetRole(ctx context.Context, id int64, role domain.Role) error {
	result, err := r.db.Exec(ctx,
		`UPDATE users SET role = $1 WHERE id = $2`, role, id)
	if err != nil {
		return fmt.Errorf("repository: failed to set role for user %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
