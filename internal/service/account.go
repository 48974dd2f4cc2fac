package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avc/smm-panel/internal/domain"
)

// ReferralSummary — сводка реферальной программы пользователя
type ReferralSummary struct {
	ReferralCode     string `json:"referralCode"`
	ReferralCount    int64  `json:"referralCount"`
	ReferralEarnings int64  `json:"referralEarnings"`
}

// AccountService реализует операции над собственным аккаунтом пользователя
type AccountService struct {
	userRepo         domain.UserRepository
	notificationRepo domain.NotificationRepository
}

// NewAccountService создает новый AccountService
func NewAccountService(userRepo domain.UserRepository, notificationRepo domain.NotificationRepository) *AccountService {
	return &AccountService{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

// Profile возвращает аккаунт пользователя
func (s *AccountService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("account service: failed to get user %d: %w", userID, err)
	}
	return user, nil
}

// UpdateProfile обновляет изменяемые поля профиля
func (s *AccountService) UpdateProfile(ctx context.Context, userID int64, phone string) error {
	if err := s.userRepo.UpdateProfile(ctx, userID, phone); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("account service: failed to update profile for user %d: %w", userID, err)
	}
	return nil
}

// Referrals возвращает сводку реферальной программы
func (s *AccountService) Referrals(ctx context.Context, userID int64) (*ReferralSummary, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("account service: failed to get user %d: %w", userID, err)
	}

	return &ReferralSummary{
		ReferralCode:     user.ReferralCode,
		ReferralCount:    user.ReferralCount,
		ReferralEarnings: user.ReferralEarnings,
	}, nil
}

// Notifications возвращает страницу уведомлений пользователя
func (s *AccountService) Notifications(ctx context.Context, userID, page, limit int64) ([]*domain.Notification, int64, error) {
	notifications, total, err := s.notificationRepo.GetNotificationsByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("account service: failed to list notifications for user %d: %w", userID, err)
	}
	return notifications, total, nil
}

// MarkNotificationRead помечает уведомление прочитанным
func (s *AccountService) MarkNotificationRead(ctx context.Context, id, userID int64) error {
	if err := s.notificationRepo.MarkRead(ctx, id, userID); err != nil {
		return fmt.Errorf("account service: failed to mark notification %d read: %w", id, err)
	}
	return nil
}
