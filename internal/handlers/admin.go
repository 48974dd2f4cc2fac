package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/avc/smm-panel/internal/domain"
	"github.com/avc/smm-panel/internal/service"
)

// AdminHandler обслуживает панель администратора
type AdminHandler struct {
	adminService   *service.AdminService
	catalogService *service.CatalogService
	orderService   *service.OrderService
	depositService *service.DepositService
	ticketService  *service.TicketService
	adminUsername  string
	logger         *zap.Logger
}

// NewAdminHandler создает новый AdminHandler
func NewAdminHandler(
	adminService *service.AdminService,
	catalogService *service.CatalogService,
	orderService *service.OrderService,
	depositService *service.DepositService,
	ticketService *service.TicketService,
	adminUsername string,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		catalogService: catalogService,
		orderService:   orderService,
		depositService: depositService,
		ticketService:  ticketService,
		adminUsername:  adminUsername,
		logger:         logger,
	}
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to get stats", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"stats": stats})
}

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	users, total, err := h.adminService.ListUsers(r.Context(), page, limit)
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"users": users,
		"total": total,
		"page":  page,
	})
}

type setActiveRequest struct {
	IsActive bool `json:"isActive"`
}

func (h *AdminHandler) SetUserActive(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.adminService.SetUserActive(r.Context(), userID, req.IsActive); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("failed to toggle user", zap.Error(err), zap.Int64("user_id", userID))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"message": "user updated"})
}

type setRoleRequest struct {
	Role domain.Role `json:"role"`
}

func (h *AdminHandler) SetUserRole(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req setRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.adminService.SetUserRole(r.Context(), userID, req.Role); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "user not found")
		case errors.Is(err, service.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("failed to set role", zap.Error(err), zap.Int64("user_id", userID))
			respondError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"message": "role updated"})
}

func (h *AdminHandler) Orders(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	orders, total, err := h.orderService.ListAll(r.Context(), page, limit)
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"orders": orders,
		"total":  total,
		"page":   page,
	})
}

func (h *AdminHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	transactions, total, err := h.depositService.ListAll(r.Context(), page, limit)
	if err != nil {
		h.logger.Error("failed to list transactions", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"transactions": transactions,
		"total":        total,
		"page":         page,
	})
}

func (h *AdminHandler) PendingDeposits(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	deposits, total, err := h.depositService.ListPending(r.Context(), page, limit)
	if err != nil {
		h.logger.Error("failed to list pending deposits", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"deposits": deposits,
		"total":    total,
		"page":     page,
	})
}

type resolveDepositRequest struct {
	TransactionID string `json:"transactionId"`
	Action        string `json:"action"`
	Reason        string `json:"reason"`
}

// ResolveDeposit подтверждает или отклоняет pending депозит.
// Повторное решение по той же транзакции возвращает 404: фильтр по
// статусу pending не находит строку.
func (h *AdminHandler) ResolveDeposit(w http.ResponseWriter, r *http.Request) {
	var req resolveDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var err error
	switch req.Action {
	case "approve":
		err = h.depositService.Approve(r.Context(), req.TransactionID, h.adminUsername)
	case "reject":
		err = h.depositService.Reject(r.Context(), req.TransactionID, h.adminUsername, req.Reason)
	default:
		respondError(w, http.StatusBadRequest, "action must be approve or reject")
		return
	}

	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			respondError(w, http.StatusNotFound, "pending deposit not found")
			return
		}
		h.logger.Error("failed to resolve deposit", zap.Error(err), zap.String("transaction_id", req.TransactionID))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"message": "deposit " + req.Action + "d"})
}

// SyncServices запускает синхронизацию каталога с поставщиком
func (h *AdminHandler) SyncServices(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalogService.Sync(r.Context())
	if err != nil {
		h.logger.Error("catalog sync failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "catalog sync failed: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"result": result})
}

func (h *AdminHandler) SetServiceActive(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.ParseInt(chi.URLParam(r, "serviceID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid service id")
		return
	}

	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.catalogService.SetActive(r.Context(), serviceID, req.IsActive); err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			respondError(w, http.StatusNotFound, "service not found")
			return
		}
		h.logger.Error("failed to toggle service", zap.Error(err), zap.Int64("service_id", serviceID))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"message": "service updated"})
}

func (h *AdminHandler) Tickets(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	tickets, total, err := h.ticketService.ListAll(r.Context(), page, limit)
	if err != nil {
		h.logger.Error("failed to list tickets", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"tickets": tickets,
		"total":   total,
		"page":    page,
	})
}

type staffReplyRequest struct {
	Message string `json:"message"`
}

// ReplyTicket добавляет ответ от имени персонала
func (h *AdminHandler) ReplyTicket(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r.Context())

	var req staffReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ticketID := chi.URLParam(r, "ticketID")
	err := h.ticketService.Reply(r.Context(), userID, ticketID, h.adminUsername, req.Message, true)
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

type updateTicketRequest struct {
	Status     domain.TicketStatus `json:"status"`
	AssignedTo string              `json:"assignedTo"`
}

func (h *AdminHandler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	var req updateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ticketID := chi.URLParam(r, "ticketID")
	if err := h.ticketService.Update(r.Context(), ticketID, req.Status, req.AssignedTo); err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			respondError(w, http.StatusNotFound, "ticket not found")
			return
		}
		h.logger.Error("failed to update ticket", zap.Error(err), zap.String("ticket_id", ticketID))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"message": "ticket updated"})
}
