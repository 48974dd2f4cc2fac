package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/avc/smm-panel/internal/domain"
	"github.com/avc/smm-panel/internal/service"
)

// TicketsHandler обслуживает пользовательскую часть поддержки
type TicketsHandler struct {
	ticketService *service.TicketService
	logger        *zap.Logger
}

// NewTicketsHandler создает новый TicketsHandler
func NewTicketsHandler(ticketService *service.TicketService, logger *zap.Logger) *TicketsHandler {
	return &TicketsHandler{
		ticketService: ticketService,
		logger:        logger,
	}
}

type createTicketRequest struct {
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
	Category string `json:"category"`
}

func (h *TicketsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	var req createTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ticket, err := h.ticketService.Create(r.Context(), userID, req.Subject, req.Message, req.Priority, req.Category)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to create ticket", zap.Error(err), zap.Int64("user_id", userID))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"ticket": ticket})
}

type replyRequest struct {
	Message string `json:"message"`
}

func (h *TicketsHandler) Reply(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	var req replyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ticketID := chi.URLParam(r, "ticketID")
	err := h.ticketService.Reply(r.Context(), userID, ticketID, "user", req.Message, false)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTicketNotFound):
			respondError(w, http.StatusNotFound, "ticket not found")
		case errors.Is(err, service.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("failed to reply to ticket", zap.Error(err), zap.String("ticket_id", ticketID))
			respondError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"message": "reply added"})
}

func (h *TicketsHandler) MyTickets(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	tickets, err := h.ticketService.MyTickets(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list tickets", zap.Error(err), zap.Int64("user_id", userID))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"tickets": tickets})
}
