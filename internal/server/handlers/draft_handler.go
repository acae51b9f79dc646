package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ayurtrace/regulator/internal/domain/models"
	"github.com/ayurtrace/regulator/internal/repository/memory"
	"github.com/ayurtrace/regulator/internal/service/drafting"
)

// DraftHandler serves the standalone AI drafting workflows: rule directives
// and contract upgrade plans.
type DraftHandler struct {
	svc    *drafting.Service
	alerts *memory.AlertStore
	logger *zap.Logger
}

// NewDraftHandler constructs the HTTP handler adapter.
func NewDraftHandler(svc *drafting.Service, alerts *memory.AlertStore, logger *zap.Logger) *DraftHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftHandler{svc: svc, alerts: alerts, logger: logger}
}

type ruleRequest struct {
	Topic string `json:"topic"`
}

// Rule drafts an official compliance rule directive and notifies the feed.
func (h *DraftHandler) Rule(c *gin.Context) {
	var req ruleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid rule payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	directive, err := h.svc.RuleDirective(c.Request.Context(), req.Topic)
	if err != nil {
		respondError(c, err)
		return
	}

	h.notify(c, "New Rule Issued", fmt.Sprintf("A compliance rule on %q has been drafted and deployed.", req.Topic))
	c.JSON(http.StatusOK, gin.H{"directive": directive})
}

type upgradeRequest struct {
	Reason string `json:"reason"`
}

// UpgradePlan drafts a technical plan for a ledger contract upgrade.
func (h *DraftHandler) UpgradePlan(c *gin.Context) {
	var req upgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid upgrade payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	plan, err := h.svc.UpgradePlan(c.Request.Context(), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	h.notify(c, "Contract Upgrade Planned", "A smart contract upgrade plan has been drafted for review.")
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

func (h *DraftHandler) notify(c *gin.Context, title, description string) {
	alert := models.Alert{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Timestamp:   time.Now().UTC(),
		Type:        models.AlertInfo,
	}
	if err := h.alerts.Append(c.Request.Context(), alert); err != nil {
		h.logger.Warn("failed to record drafting alert", zap.Error(err))
	}
}
