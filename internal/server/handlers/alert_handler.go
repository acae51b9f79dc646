package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ayurtrace/regulator/internal/repository/memory"
)

// AlertHandler serves the session-scoped notification feed.
type AlertHandler struct {
	store  *memory.AlertStore
	logger *zap.Logger
}

// NewAlertHandler constructs the HTTP handler adapter.
func NewAlertHandler(store *memory.AlertStore, logger *zap.Logger) *AlertHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AlertHandler{store: store, logger: logger}
}

// List returns all alerts, newest first.
func (h *AlertHandler) List(c *gin.Context) {
	alerts, err := h.store.ListAlerts(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing alerts", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

// Dismiss removes an alert from the feed.
func (h *AlertHandler) Dismiss(c *gin.Context) {
	if err := h.store.Dismiss(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
