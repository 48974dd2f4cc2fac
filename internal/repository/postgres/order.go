package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/avc/smm-panel/internal/domain"
)

const orderColumns = `order_id, user_id, service_id, service_name, platform, service_type,
	 target_url, quantity, cost, status, api_order_id, start_count, remains,
	 supplier_error, created_at, delivered_at`

// OrderRepository реализует domain.OrderRepository
type OrderRepository struct {
	db DBTX
}

// NewOrderRepository создает новый OrderRepository
func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	order := &domain.Order{}
	err := row.Scan(
		&order.OrderID, &order.UserID, &order.ServiceID, &order.ServiceName,
		&order.Platform, &order.ServiceType, &order.TargetURL, &order.Quantity,
		&order.Cost, &order.Status, &order.APIOrderID, &order.StartCount,
		&order.Remains, &order.SupplierError, &order.CreatedAt, &order.DeliveredAt,
	)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// CreateOrder создает новый заказ. Снимок названия/платформы/типа услуги
// и стоимость фиксируются здесь и больше не меняются.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO orders (order_id, user_id, service_id, service_name, platform, service_type,
		                     target_url, quantity, cost, status, api_order_id, supplier_error)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING created_at`,
		order.OrderID, order.UserID, order.ServiceID, order.ServiceName,
		order.Platform, order.ServiceType, order.TargetURL, order.Quantity,
		order.Cost, order.Status, order.APIOrderID, order.SupplierError,
	).Scan(&order.CreatedAt)

	if err != nil {
		return fmt.Errorf("repository: failed to create order %q: %w", order.OrderID, err)
	}

	return nil
}

// GetOrderByID получает заказ по идентификатору
func (r *OrderRepository) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, orderID)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("repository: failed to get order %q: %w", orderID, err)
	}

	return order, nil
}

// GetOrdersByUserID получает страницу заказов пользователя и общее количество
func (r *OrderRepository) GetOrdersByUserID(ctx context.Context, userID, page, limit int64) ([]*domain.Order, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository: failed to count orders for user %d: %w", userID, err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("repository: failed to get orders for user %d: %w", userID, err)
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// UpdateOrderProgress обновляет статус и прогресс заказа по данным поставщика
func (r *OrderRepository) UpdateOrderProgress(ctx context.Context, orderID string, status domain.OrderStatus, startCount, remains int64, deliveredAt *time.Time) error {
	result, err := r.db.Exec(ctx,
		`UPDATE orders
		 SET status = $1, start_count = $2, remains = $3,
		     delivered_at = COALESCE($4, delivered_at)
		 WHERE order_id = $5`,
		status, startCount, remains, deliveredAt, orderID)
	if err != nil {
		return fmt.Errorf("repository: failed to update order %q progress: %w", orderID, err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// UpdateOrderStatus обновляет только статус заказа
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	result, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $1 WHERE order_id = $2`, status, orderID)
	if err != nil {
		return fmt.Errorf("repository: failed to update order %q status: %w", orderID, err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// ListOrders получает страницу всех заказов и общее количество
func (r *OrderRepository) ListOrders(ctx context.Context, page, limit int64) ([]*domain.Order, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository: failed to count orders: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("repository: failed to list orders: %w", err)
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func collectOrders(rows pgx.Rows) ([]*domain.Order, error) {
	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating orders: %w", err)
	}

	return orders, nil
}
