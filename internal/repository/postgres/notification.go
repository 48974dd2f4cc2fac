package postgres

import (
	"context"
	"fmt"

	"github.com/avc/smm-panel/internal/domain"
)

// NotificationRepository реализует domain.NotificationRepository
type NotificationRepository struct {
	db DBTX
}

// NewNotificationRepository создает новый NotificationRepository
func NewNotificationRepository(db DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CreateNotification создает уведомление
func (r *NotificationRepository) CreateNotification(ctx context.Context, n *domain.Notification) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO notifications (user_id, type, title, message)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		n.UserID, n.Type, n.Title, n.Message,
	).Scan(&n.ID, &n.CreatedAt)

	if err != nil {
		return fmt.Errorf("repository: failed to create notification for user %d: %w", n.UserID, err)
	}

	return nil
}

// GetNotificationsByUserID получает страницу уведомлений пользователя
func (r *NotificationRepository) GetNotificationsByUserID(ctx context.Context, userID, page, limit int64) ([]*domain.Notification, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository: failed to count notifications for user %d: %w", userID, err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, type, title, message, is_read, created_at
		 FROM notifications
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("repository: failed to get notifications for user %d: %w", userID, err)
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		n := &domain.Notification{}
		err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("repository: failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repository: error iterating notifications: %w", err)
	}

	return notifications, total, nil
}

// MarkRead помечает уведомление пользователя прочитанным
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	result, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("repository: failed to mark notification %d read: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("repository: notification %d not found for user %d", id, userID)
	}
	return nil
}
