package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/avc/smm-panel/internal/domain"
	"github.com/avc/smm-panel/internal/service"
)

// DepositsHandler обслуживает пользовательскую часть депозитного workflow
type DepositsHandler struct {
	depositService *service.DepositService
	logger         *zap.Logger
}

// NewDepositsHandler создает новый DepositsHandler
func NewDepositsHandler(depositService *service.DepositService, logger *zap.Logger) *DepositsHandler {
	return &DepositsHandler{
		depositService: depositService,
		logger:         logger,
	}
}

type depositRequest struct {
	Amount float64 `json:"amount"`
}

func (h *DepositsHandler) Request(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	instructions, err := h.depositService.Request(r.Context(), userID, req.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to request deposit", zap.Error(err), zap.Int64("user_id", userID))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"deposit":      instructions.Transaction,
		"instructions": instructions.Bank,
	})
}

type uploadProofRequest struct {
	TransactionID string `json:"transactionId"`
	ProofImage    string `json:"proofImage"`
	SenderName    string `json:"senderName"`
	SenderAccount string `json:"senderAccount"`
	TransferDate  string `json:"transferDate"`
}

func (h *DepositsHandler) UploadProof(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	var req uploadProofRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.depositService.AttachProof(r.Context(), req.TransactionID, userID,
		req.ProofImage, req.SenderName, req.SenderAccount, req.TransferDate)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTransactionNotFound):
			respondError(w, http.StatusNotFound, "pending deposit not found")
		case errors.Is(err, service.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("failed to upload proof", zap.Error(err), zap.String("transaction_id", req.TransactionID))
			respondError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"message": "proof uploaded, awaiting verification"})
}

// Transactions отдает страницу транзакций пользователя
func (h *DepositsHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	page, limit := parsePagination(r)
	transactions, total, err := h.depositService.ListMine(r.Context(), userID, page, limit)
	if err != nil {
		h.logger.Error("failed to list transactions", zap.Error(err), zap.Int64("user_id", userID))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"transactions": transactions,
		"total":        total,
		"page":         page,
	})
}
