package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avc/smm-panel/internal/domain"
	"github.com/avc/smm-panel/internal/utils/ident"
)

// TicketService реализует переписку с поддержкой
type TicketService struct {
	ticketRepo domain.TicketRepository
	notifier   domain.Notifier
}

// NewTicketService создает новый TicketService
func NewTicketService(ticketRepo domain.TicketRepository, notifier domain.Notifier) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		notifier:   notifier,
	}
}

// Create открывает новый тикет
func (s *TicketService) Create(ctx context.Context, userID int64, subject, message, priority, category string) (*domain.Ticket, error) {
	if subject == "" || message == "" {
		return nil, fmt.Errorf("%w: subject and message are required", ErrInvalidInput)
	}
	if priority == "" {
		priority = "normal"
	}
	if category == "" {
		category = "general"
	}

	ticket := &domain.Ticket{
		TicketID: ident.TicketID(),
		UserID:   userID,
		Subject:  subject,
		Message:  message,
		Status:   domain.TicketStatusOpen,
		Priority: priority,
		Category: category,
		Replies:  []domain.TicketReply{},
	}

	if err := s.ticketRepo.CreateTicket(ctx, ticket); err != nil {
		return nil, fmt.Errorf("ticket service: failed to create ticket for user %d: %w", userID, err)
	}

	s.notifier.AlertAdmin(ctx, fmt.Sprintf("New ticket %s: %s", ticket.TicketID, subject))

	return ticket, nil
}

// Get возвращает тикет пользователя
func (s *TicketService) Get(ctx context.Context, userID int64, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.ticketRepo.GetTicketByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("ticket service: failed to get ticket %q: %w", ticketID, err)
	}
	if ticket.UserID != userID {
		return nil, domain.ErrTicketNotFound
	}
	return ticket, nil
}

// Reply добавляет сообщение в переписку.
// Любой ответ автоматически переводит тикет в "awaiting reply".
func (s *TicketService) Reply(ctx context.Context, userID int64, ticketID, author, message string, isStaff bool) error {
	if message == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidInput)
	}

	ticket, err := s.ticketRepo.GetTicketByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			return err
		}
		return fmt.Errorf("ticket service: failed to get ticket %q: %w", ticketID, err)
	}
	// Пользователь пишет только в свои тикеты, персонал — в любые
	if !isStaff && ticket.UserID != userID {
		return domain.ErrTicketNotFound
	}

	reply := domain.TicketReply{
		Author:    author,
		Message:   message,
		IsStaff:   isStaff,
		CreatedAt: time.Now(),
	}

	if err := s.ticketRepo.AppendReply(ctx, ticketID, reply, domain.TicketStatusAwaitingReply); err != nil {
		return fmt.Errorf("ticket service: failed to append reply to %q: %w", ticketID, err)
	}

	if isStaff {
		s.notifier.Notify(ctx, ticket.UserID, "ticket", "Support replied",
			fmt.Sprintf("Your ticket %s has a new reply.", ticketID))
	} else {
		s.notifier.AlertAdmin(ctx, fmt.Sprintf("New reply on ticket %s", ticketID))
	}

	return nil
}

// MyTickets возвращает тикеты пользователя
func (s *TicketService) MyTickets(ctx context.Context, userID int64) ([]*domain.Ticket, error) {
	tickets, err := s.ticketRepo.GetTicketsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ticket service: failed to list tickets for user %d: %w", userID, err)
	}
	return tickets, nil
}

// ListAll возвращает страницу всех тикетов для персонала
func (s *TicketService) ListAll(ctx context.Context, page, limit int64) ([]*domain.Ticket, int64, error) {
	tickets, total, err := s.ticketRepo.ListTickets(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("ticket service: failed to list tickets: %w", err)
	}
	return tickets, total, nil
}

// Update меняет статус и назначение тикета (действие персонала)
func (s *TicketService) Update(ctx context.Context, ticketID string, status domain.TicketStatus, assignedTo string) error {
	if err := s.ticketRepo.UpdateTicket(ctx, ticketID, status, assignedTo); err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			return err
		}
		return fmt.Errorf("ticket service: failed to update ticket %q: %w", ticketID, err)
	}
	return nil
}
