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

// OrdersHandler обслуживает заказы пользователя
type OrdersHandler struct {
	orderService *service.OrderService
	logger       *zap.Logger
}

// NewOrdersHandler создает новый OrdersHandler
func NewOrdersHandler(orderService *service.OrderService, logger *zap.Logger) *OrdersHandler {
	return &OrdersHandler{
		orderService: orderService,
		logger:       logger,
	}
}

type placeOrderRequest struct {
	ServiceID int64  `json:"serviceId"`
	TargetURL string `json:"targetUrl"`
	Quantity  int64  `json:"quantity"`
}

func (h *OrdersHandler) Place(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orderService.Place(r.Context(), userID, req.ServiceID, req.TargetURL, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrServiceNotFound):
			respondError(w, http.StatusNotFound, "service not found")
		case errors.Is(err, domain.ErrServiceInactive):
			respondError(w, http.StatusBadRequest, "service is not available")
		case errors.Is(err, domain.ErrInvalidQuantity):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrInsufficientBalance):
			respondError(w, http.StatusBadRequest, "insufficient balance")
		case errors.Is(err, service.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			// Сырая ошибка поставщика видна администратору в заказе,
			// пользователю отдается общий ответ
			h.logger.Error("failed to place order", zap.Error(err), zap.Int64("user_id", userID))
			respondError(w, http.StatusInternalServerError, "failed to place order")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"order": order})
}

func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	orderID := chi.URLParam(r, "orderID")
	order, err := h.orderService.Get(r.Context(), userID, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Error("failed to get order", zap.Error(err), zap.String("order_id", orderID))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"order": order})
}

func (h *OrdersHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	page, limit := parsePagination(r)
	orders, total, err := h.orderService.ListMine(r.Context(), userID, page, limit)
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err), zap.Int64("user_id", userID))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"orders": orders,
		"total":  total,
		"page":   page,
	})
}

func (h *OrdersHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	orderID := chi.URLParam(r, "orderID")
	order, err := h.orderService.Cancel(r.Context(), userID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			respondError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, domain.ErrOrderNotCancelable):
			respondError(w, http.StatusBadRequest, "order cannot be cancelled")
		case errors.Is(err, domain.ErrCancelNotSupported):
			respondError(w, http.StatusBadRequest, "service does not support cancellation")
		default:
			h.logger.Error("failed to cancel order", zap.Error(err), zap.String("order_id", orderID))
			respondError(w, http.StatusInternalServerError, "failed to cancel order")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"order": order})
}

func (h *OrdersHandler) Refill(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	orderID := chi.URLParam(r, "orderID")
	err := h.orderService.Refill(r.Context(), userID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			respondError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, domain.ErrRefillNotSupported):
			respondError(w, http.StatusBadRequest, "service does not support refill")
		default:
			h.logger.Error("failed to request refill", zap.Error(err), zap.String("order_id", orderID))
			respondError(w, http.StatusInternalServerError, "failed to request refill")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"message": "refill requested"})
}
