package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ayurtrace/regulator/internal/service/recall"
)

// RecallHandler drives the three-step recall workflow over HTTP.
type RecallHandler struct {
	orchestrator *recall.Orchestrator
	logger       *zap.Logger
}

// NewRecallHandler constructs the HTTP handler adapter.
func NewRecallHandler(orchestrator *recall.Orchestrator, logger *zap.Logger) *RecallHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecallHandler{orchestrator: orchestrator, logger: logger}
}

// Start opens a recall workflow for the batch.
func (h *RecallHandler) Start(c *gin.Context) {
	workflow, err := h.orchestrator.Start(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workflow)
}

type draftRequest struct {
	Reason string `json:"reason"`
}

// Draft runs step 1: justification plus communication generation.
func (h *RecallHandler) Draft(c *gin.Context) {
	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid draft payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	workflow, err := h.orchestrator.Draft(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workflow)
}

// Confirm runs step 2: the operator approves the communication and the
// recall executes.
func (h *RecallHandler) Confirm(c *gin.Context) {
	batch, workflow, err := h.orchestrator.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workflow": workflow, "batch": batch})
}

// Cancel abandons an unfinished workflow.
func (h *RecallHandler) Cancel(c *gin.Context) {
	if err := h.orchestrator.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Status returns the current workflow snapshot.
func (h *RecallHandler) Status(c *gin.Context) {
	workflow, err := h.orchestrator.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workflow)
}
