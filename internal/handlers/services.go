package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/avc/smm-panel/internal/service"
)

// ServicesHandler отдает каталог услуг
type ServicesHandler struct {
	catalogService *service.CatalogService
	logger         *zap.Logger
}

// NewServicesHandler создает новый ServicesHandler
func NewServicesHandler(catalogService *service.CatalogService, logger *zap.Logger) *ServicesHandler {
	return &ServicesHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// List отдает активные услуги, сгруппированные по платформе
func (h *ServicesHandler) List(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.catalogService.ListGrouped(r.Context())
	if err != nil {
		h.logger.Error("failed to list services", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"services": grouped})
}
