package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avc/smm-panel/internal/domain"
)

// AdminService реализует сводку и управление пользователями для панели
// администратора. Списки заказов, транзакций и тикетов отдают профильные
// сервисы.
type AdminService struct {
	statsRepo domain.StatsRepository
	userRepo  domain.UserRepository
}

// NewAdminService создает новый AdminService
func NewAdminService(statsRepo domain.StatsRepository, userRepo domain.UserRepository) *AdminService {
	return &AdminService{
		statsRepo: statsRepo,
		userRepo:  userRepo,
	}
}

// Stats возвращает сводку для дашборда
func (s *AdminService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	stats, err := s.statsRepo.GetDashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin service: failed to get dashboard stats: %w", err)
	}
	return stats, nil
}

// ListUsers возвращает страницу пользователей
func (s *AdminService) ListUsers(ctx context.Context, page, limit int64) ([]*domain.User, int64, error) {
	users, total, err := s.userRepo.ListUsers(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("admin service: failed to list users: %w", err)
	}
	return users, total, nil
}

// SetUserActive включает или отключает аккаунт.
// Аккаунты не удаляются физически, только деактивируются.
func (s *AdminService) SetUserActive(ctx context.Context, userID int64, active bool) error {
	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("admin service: failed to toggle user %d: %w", userID, err)
	}
	return nil
}

// SetUserRole меняет роль аккаунта
func (s *AdminService) SetUserRole(ctx context.Context, userID int64, role domain.Role) error {
	if role != domain.RoleUser && role != domain.RoleAdmin && role != domain.RoleSupport {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	if err := s.userRepo.SetRole(ctx, userID, role); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("admin service: failed to set role for user %d: %w", userID, err)
	}
	return nil
}
