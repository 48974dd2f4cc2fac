package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/avc/smm-panel/internal/domain"
)

const ticketColumns = `ticket_id, user_id, subject, message, status, priority, category,
	 assigned_to, replies, created_at, updated_at`

// TicketRepository реализует domain.TicketRepository.
// Переписка хранится как JSONB-массив в строке тикета.
type TicketRepository struct {
	db DBTX
}

// NewTicketRepository создает новый TicketRepository
func NewTicketRepository(db DBTX) *TicketRepository {
	return &TicketRepository{db: db}
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	ticket := &domain.Ticket{}
	var replies []byte
	err := row.Scan(
		&ticket.TicketID, &ticket.UserID, &ticket.Subject, &ticket.Message,
		&ticket.Status, &ticket.Priority, &ticket.Category, &ticket.AssignedTo,
		&replies, &ticket.CreatedAt, &ticket.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(replies, &ticket.Replies); err != nil {
		return nil, fmt.Errorf("failed to decode ticket replies: %w", err)
	}
	return ticket, nil
}

// CreateTicket создает новый тикет
func (r *TicketRepository) CreateTicket(ctx context.Context, ticket *domain.Ticket) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO tickets (ticket_id, user_id, subject, message, status, priority, category)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at`,
		ticket.TicketID, ticket.UserID, ticket.Subject, ticket.Message,
		ticket.Status, ticket.Priority, ticket.Category,
	).Scan(&ticket.CreatedAt, &ticket.UpdatedAt)

	if err != nil {
		return fmt.Errorf("repository: failed to create ticket %q: %w", ticket.TicketID, err)
	}

	return nil
}

// GetTicketByID получает тикет по идентификатору
func (r *TicketRepository) GetTicketByID(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE ticket_id = $1`, ticketID)

	ticket, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, fmt.Errorf("repository: failed to get ticket %q: %w", ticketID, err)
	}

	return ticket, nil
}

// GetTicketsByUserID получает все тикеты пользователя
func (r *TicketRepository) GetTicketsByUserID(ctx context.Context, userID int64) ([]*domain.Ticket, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE user_id = $1 ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to get tickets for user %d: %w", userID, err)
	}
	defer rows.Close()

	return collectTickets(rows)
}

// ListTickets получает страницу всех тикетов и общее количество
func (r *TicketRepository) ListTickets(ctx context.Context, page, limit int64) ([]*domain.Ticket, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository: failed to count tickets: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+ticketColumns+` FROM tickets ORDER BY updated_at DESC LIMIT $1 OFFSET $2`,
		limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("repository: failed to list tickets: %w", err)
	}
	defer rows.Close()

	tickets, err := collectTickets(rows)
	if err != nil {
		return nil, 0, err
	}

	return tickets, total, nil
}

// AppendReply добавляет сообщение в переписку и обновляет статус тикета
func (r *TicketRepository) AppendReply(ctx context.Context, ticketID string, reply domain.TicketReply, status domain.TicketStatus) error {
	encoded, err := json.Marshal(reply)
	if err != nil {
		return fmt.Errorf("repository: failed to encode ticket reply: %w", err)
	}

	result, err := r.db.Exec(ctx,
		`UPDATE tickets
		 SET replies = replies || $1::jsonb, status = $2, updated_at = NOW()
		 WHERE ticket_id = $3`,
		encoded, status, ticketID)
	if err != nil {
		return fmt.Errorf("repository: failed to append reply to ticket %q: %w", ticketID, err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

// UpdateTicket меняет статус и назначение тикета
func (r *TicketRepository) UpdateTicket(ctx context.Context, ticketID string, status domain.TicketStatus, assignedTo string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE tickets SET status = $1, assigned_to = $2, updated_at = NOW() WHERE ticket_id = $3`,
		status, assignedTo, ticketID)
	if err != nil {
		return fmt.Errorf("repository: failed to update ticket %q: %w", ticketID, err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

func collectTickets(rows pgx.Rows) ([]*domain.Ticket, error) {
	var tickets []*domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating tickets: %w", err)
	}

	return tickets, nil
}
