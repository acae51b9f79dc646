package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ayurtrace/regulator/internal/server/handlers"
)

// Handlers bundles the HTTP adapters the router wires up.
type Handlers struct {
	Batches     *handlers.BatchHandler
	Alerts      *handlers.AlertHandler
	Recalls     *handlers.RecallHandler
	Drafts      *handlers.DraftHandler
	Inspections *handlers.InspectionHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.GET("/batches", h.Batches.List)
		api.GET("/batches/:id", h.Batches.Get)
		api.GET("/stats", h.Batches.Stats)

		api.GET("/alerts", h.Alerts.List)
		api.DELETE("/alerts/:id", h.Alerts.Dismiss)

		api.POST("/batches/:id/recall", h.Recalls.Start)
		api.GET("/batches/:id/recall", h.Recalls.Status)
		api.POST("/batches/:id/recall/draft", h.Recalls.Draft)
		api.POST("/batches/:id/recall/confirm", h.Recalls.Confirm)
		api.DELETE("/batches/:id/recall", h.Recalls.Cancel)

		api.POST("/drafts/rule", h.Drafts.Rule)
		api.POST("/drafts/upgrade-plan", h.Drafts.UpgradePlan)

		api.GET("/inspections/eligible", h.Inspections.Eligible)
		api.POST("/inspections", h.Inspections.Schedule)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
