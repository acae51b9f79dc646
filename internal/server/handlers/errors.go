package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayurtrace/regulator/internal/domain/models"
	"github.com/ayurtrace/regulator/internal/service/recall"
)

// respondError maps domain error kinds onto HTTP statuses. Nothing here is
// fatal; every failure surfaces as a user-visible message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound), errors.Is(err, recall.ErrNoWorkflow):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, recall.ErrDraftInProgress), errors.Is(err, recall.ErrWorkflowCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case models.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case models.IsExternal(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
