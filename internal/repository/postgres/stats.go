package postgres

import (
	"context"
	"fmt"

	"github.com/avc/smm-panel/internal/domain"
)

// StatsRepository реализует domain.StatsRepository
type StatsRepository struct {
	db DBTX
}

// NewStatsRepository создает новый StatsRepository
func NewStatsRepository(db DBTX) *StatsRepository {
	return &StatsRepository{db: db}
}

// GetDashboardStats собирает сводку для панели администратора.
// Выручка считается как сумма подтвержденных депозитов в найре.
func (r *StatsRepository) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{}

	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE is_active),
			(SELECT COUNT(*) FROM orders),
			(SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE type = 'deposit' AND status = 'completed'),
			(SELECT COUNT(*) FROM transactions WHERE type = 'deposit' AND status = 'pending'),
			(SELECT COUNT(*) FROM tickets WHERE status IN ('open', 'in progress', 'awaiting reply'))`,
	).Scan(
		&stats.TotalUsers, &stats.ActiveUsers, &stats.TotalOrders,
		&stats.TotalRevenue, &stats.PendingDeposits, &stats.OpenTickets,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to get dashboard stats: %w", err)
	}

	return stats, nil
}
