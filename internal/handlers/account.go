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

// AccountHandler обслуживает профиль, уведомления и реферальную сводку
type AccountHandler struct {
	accountService *service.AccountService
	logger         *zap.Logger
}

// NewAccountHandler создает новый AccountHandler
func NewAccountHandler(accountService *service.AccountService, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	user, err := h.accountService.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("failed to get profile", zap.Error(err), zap.Int64("user_id", userID))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"user": user})
}

type updateProfileRequest struct {
	Phone string `json:"phone"`
}

func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.accountService.UpdateProfile(r.Context(), userID, req.Phone); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("failed to update profile", zap.Error(err), zap.Int64("user_id", userID))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"message": "profile updated"})
}

func (h *AccountHandler) Referrals(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	summary, err := h.accountService.Referrals(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get referral summary", zap.Error(err), zap.Int64("user_id", userID))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"referrals": summary})
}

func (h *AccountHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	page, limit := parsePagination(r)
	notifications, total, err := h.accountService.Notifications(r.Context(), userID, page, limit)
	if err != nil {
		h.logger.Error("failed to list notifications", zap.Error(err), zap.Int64("user_id", userID))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"notifications": notifications,
		"total":         total,
		"page":          page,
	})
}

func (h *AccountHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "notificationID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := h.accountService.MarkNotificationRead(r.Context(), id, userID); err != nil {
		h.logger.Error("failed to mark notification read", zap.Error(err), zap.Int64("id", id))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"message": "marked as read"})
}
