package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/avc/smm-panel/internal/domain"
)

const serviceColumns = `service_id, name, category, platform, service_type, rate, naira_rate,
	 our_rate, min, max, refill, cancel, is_active, last_updated`

// ServiceRepository реализует domain.ServiceRepository
type ServiceRepository struct {
	db DBTX
}

// NewServiceRepository создает новый ServiceRepository
func NewServiceRepository(db DBTX) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func scanService(row pgx.Row) (*domain.Service, error) {
	svc := &domain.Service{}
	err := row.Scan(
		&svc.ServiceID, &svc.Name, &svc.Category, &svc.Platform, &svc.ServiceType,
		&svc.Rate, &svc.NairaRate, &svc.OurRate, &svc.Min, &svc.Max,
		&svc.Refill, &svc.Cancel, &svc.IsActive, &svc.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// UpsertService вставляет или обновляет позицию каталога по ключу поставщика.
// Возвращает true, если позиция была добавлена (а не обновлена).
func (r *ServiceRepository) UpsertService(ctx context.Context, svc *domain.Service) (bool, error) {
	var inserted bool
	err := r.db.QueryRow(ctx,
		`INSERT INTO services (service_id, name, category, platform, service_type,
		                       rate, naira_rate, our_rate, min, max, refill, cancel, last_updated)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		 ON CONFLICT (service_id) DO UPDATE SET
		     name = EXCLUDED.name,
		     category = EXCLUDED.category,
		     platform = EXCLUDED.platform,
		     service_type = EXCLUDED.service_type,
		     rate = EXCLUDED.rate,
		     naira_rate = EXCLUDED.naira_rate,
		     our_rate = EXCLUDED.our_rate,
		     min = EXCLUDED.min,
		     max = EXCLUDED.max,
		     refill = EXCLUDED.refill,
		     cancel = EXCLUDED.cancel,
		     last_updated = NOW()
		 RETURNING (xmax = 0)`,
		svc.ServiceID, svc.Name, svc.Category, svc.Platform, svc.ServiceType,
		svc.Rate, svc.NairaRate, svc.OurRate, svc.Min, svc.Max, svc.Refill, svc.Cancel,
	).Scan(&inserted)

	if err != nil {
		return false, fmt.Errorf("repository: failed to upsert service %d: %w", svc.ServiceID, err)
	}

	return inserted, nil
}

// GetServiceByID получает позицию каталога по ключу поставщика
func (r *ServiceRepository) GetServiceByID(ctx context.Context, serviceID int64) (*domain.Service, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE service_id = $1`, serviceID)

	svc, err := scanService(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, fmt.Errorf("repository: failed to get service %d: %w", serviceID, err)
	}

	return svc, nil
}

// ListActiveServices получает все активные позиции каталога
func (r *ServiceRepository) ListActiveServices(ctx context.Context) ([]*domain.Service, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+serviceColumns+` FROM services WHERE is_active ORDER BY platform, service_id`)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list services: %w", err)
	}
	defer rows.Close()

	var services []*domain.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan service: %w", err)
		}
		services = append(services, svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating services: %w", err)
	}

	return services, nil
}

// SetServiceActive включает или выключает позицию каталога
func (r *ServiceRepository) SetServiceActive(ctx context.Context, serviceID int64, active bool) error {
	result, err := r.db.Exec(ctx,
		`UPDATE services SET is_active = $1 WHERE service_id = $2`, active, serviceID)
	if err != nil {
		return fmt.Errorf("repository: failed to set active for service %d: %w", serviceID, err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}
