package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ayurtrace/regulator/internal/service/inspection"
)

// InspectionHandler schedules field inspections and suggests notes.
type InspectionHandler struct {
	svc    *inspection.Service
	logger *zap.Logger
}

// NewInspectionHandler constructs the HTTP handler adapter.
func NewInspectionHandler(svc *inspection.Service, logger *zap.Logger) *InspectionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InspectionHandler{svc: svc, logger: logger}
}

// Eligible lists the batches an inspection can currently target.
func (h *InspectionHandler) Eligible(c *gin.Context) {
	batches, err := h.svc.EligibleBatches(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing inspectable batches", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"batches": batches})
}

type scheduleRequest struct {
	BatchID string `json:"batch_id" binding:"required"`
	Notes   string `json:"notes"`
	Suggest bool   `json:"suggest"`
}

// Schedule books an inspection. With suggest set and no notes provided, the
// notes are drafted by the text-generation collaborator first.
func (h *InspectionHandler) Schedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid inspection payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	notes := req.Notes
	if req.Suggest && notes == "" {
		suggested, err := h.svc.SuggestNotes(c.Request.Context(), req.BatchID)
		if err != nil {
			respondError(c, err)
			return
		}
		notes = suggested
	}

	batch, err := h.svc.Schedule(c.Request.Context(), req.BatchID, notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"batch": batch, "notes": notes})
}
