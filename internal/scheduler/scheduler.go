package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ayurtrace/regulator/internal/config"
	"github.com/ayurtrace/regulator/internal/domain/models"
	"github.com/ayurtrace/regulator/internal/repository"
	"github.com/ayurtrace/regulator/internal/service/tracking"
)

// AlertSink receives the digest notification.
type AlertSink interface {
	Append(ctx context.Context, alert models.Alert) error
}

// Scheduler runs the daily compliance digest: it derives the stats snapshot,
// exports it to the configured snapshot stores, and notifies the feed.
type Scheduler struct {
	cron    *cron.Cron
	tracker *tracking.Service
	stores  []repository.SnapshotStore
	alerts  AlertSink
	cfg     config.SnapshotConfig
	logger  *zap.Logger
}

// NewScheduler creates a new scheduler instance. Jobs fire in the configured
// timezone; an unknown timezone falls back to the host's local time.
func NewScheduler(cfg config.SnapshotConfig, tracker *tracking.Service, stores []repository.SnapshotStore, alerts AlertSink, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, using local time", zap.String("timezone", cfg.Timezone), zap.Error(err))
		location = time.Local
	}

	return &Scheduler{
		cron:    cron.New(cron.WithLocation(location)),
		tracker: tracker,
		stores:  stores,
		alerts:  alerts,
		cfg:     cfg,
		logger:  logger,
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.publishSnapshot); err != nil {
		s.logger.Error("failed to schedule compliance snapshot", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) publishSnapshot() {
	s.logger.Info("generating compliance snapshot")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	stats, err := s.tracker.Stats(ctx)
	if err != nil {
		s.logger.Error("failed to compute compliance snapshot", zap.Error(err))
		return
	}

	snapshot := models.SnapshotFromStats(stats, time.Now().UTC())

	for _, store := range s.stores {
		if err := store.SaveSnapshot(ctx, snapshot); err != nil {
			s.logger.Error("failed to export compliance snapshot", zap.Error(err))
		}
	}

	alertType := models.AlertInfo
	if stats.RecalledBatches > 0 {
		alertType = models.AlertWarning
	}

	alert := models.Alert{
		ID:    uuid.NewString(),
		Title: "Daily Compliance Digest",
		Description: fmt.Sprintf("%d batches tracked, compliance rate %s, %d recalled, %d export ready.",
			stats.TotalBatches, stats.ComplianceRate, stats.RecalledBatches, stats.ExportReady),
		Timestamp: time.Now().UTC(),
		Type:      alertType,
	}

	if err := s.alerts.Append(ctx, alert); err != nil {
		s.logger.Error("failed to record digest alert", zap.Error(err))
	} else {
		s.logger.Info("compliance snapshot published", zap.String("compliance_rate", stats.ComplianceRate))
	}
}
