// Package notify реализует domain.Notifier: уведомления пользователям
// в БД и Telegram-алерты оператору.
package notify

import (
	"context"

	"github.com/go-telegram/bot"
	"go.uber.org/zap"

	"github.com/avc/smm-panel/internal/domain"
)

// Service пишет уведомления в хранилище и, если настроен Telegram-бот,
// шлет оператору алерты о событиях, требующих ручного действия.
// Сбой уведомления никогда не ломает вызвавшую операцию.
type Service struct {
	notificationRepo domain.NotificationRepository
	bot              *bot.Bot
	adminChatID      int64
	logger           *zap.Logger
}

// New создает Service. При пустом токене Telegram-алерты отключены,
// уведомления в БД продолжают работать.
func New(notificationRepo domain.NotificationRepository, telegramToken string, adminChatID int64, logger *zap.Logger) *Service {
	s := &Service{
		notificationRepo: notificationRepo,
		adminChatID:      adminChatID,
		logger:           logger,
	}

	if telegramToken != "" {
		b, err := bot.New(telegramToken)
		if err != nil {
			logger.Error("failed to init telegram bot, alerts disabled", zap.Error(err))
			return s
		}
		s.bot = b
	}

	return s
}

// Notify сохраняет уведомление пользователя
func (s *Service) Notify(ctx context.Context, userID int64, ntype, title, message string) {
	n := &domain.Notification{
		UserID:  userID,
		Type:    ntype,
		Title:   title,
		Message: message,
	}
	if err := s.notificationRepo.CreateNotification(ctx, n); err != nil {
		s.logger.Error("failed to create notification",
			zap.Int64("user_id", userID),
			zap.String("type", ntype),
			zap.Error(err))
	}
}

// AlertAdmin шлет оператору сообщение в Telegram
func (s *Service) AlertAdmin(ctx context.Context, text string) {
	if s.bot == nil {
		return
	}

	_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: s.adminChatID,
		Text:   text,
	})
	if err != nil {
		s.logger.Error("failed to send telegram alert", zap.Error(err))
	}
}
