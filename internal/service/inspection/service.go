package inspection

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ayurtrace/regulator/internal/domain/models"
)

// ActionScheduled is the history action stamped when an inspection is booked.
const ActionScheduled = "Inspection Scheduled"

// Tracker is the slice of the tracking service this package needs.
type Tracker interface {
	ListBatches(ctx context.Context) ([]models.Batch, error)
	GetBatch(ctx context.Context, id string) (models.Batch, error)
	RecordEvent(ctx context.Context, id string, event models.HistoryEvent) (models.Batch, error)
}

// NotesDrafter suggests inspection notes from batch context.
type NotesDrafter interface {
	InspectionNotes(ctx context.Context, batch models.Batch, alerts []models.Alert) (string, error)
}

// AlertSource provides the recent alerts fed into note suggestions and
// receives the scheduling notification.
type AlertSource interface {
	ListAlerts(ctx context.Context) ([]models.Alert, error)
	Append(ctx context.Context, alert models.Alert) error
}

// Service schedules field inspections for batches under testing.
type Service struct {
	tracker Tracker
	drafter NotesDrafter
	alerts  AlertSource
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires a new inspection service instance.
func NewService(tracker Tracker, drafter NotesDrafter, alerts AlertSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		tracker: tracker,
		drafter: drafter,
		alerts:  alerts,
		logger:  logger,
		now:     time.Now,
	}
}

// EligibleBatches lists the batches an inspection can be scheduled for.
// Only batches under testing qualify.
func (s *Service) EligibleBatches(ctx context.Context) ([]models.Batch, error) {
	batches, err := s.tracker.ListBatches(ctx)
	if err != nil {
		return nil, err
	}

	eligible := make([]models.Batch, 0)
	for _, b := range batches {
		if b.Status == models.StatusTesting {
			eligible = append(eligible, b)
		}
	}
	return eligible, nil
}

// SuggestNotes asks the text-generation collaborator for prioritized
// inspection notes built from the batch history and recent alerts.
func (s *Service) SuggestNotes(ctx context.Context, batchID string) (string, error) {
	batch, err := s.tracker.GetBatch(ctx, batchID)
	if err != nil {
		return "", err
	}

	alerts, err := s.alerts.ListAlerts(ctx)
	if err != nil {
		s.logger.Warn("failed to load alerts for note suggestions", zap.Error(err))
		alerts = nil
	}

	return s.drafter.InspectionNotes(ctx, batch, alerts)
}

// Schedule books an inspection for a batch under testing, stamping a history
// event and raising an info alert. The batch status is unchanged.
func (s *Service) Schedule(ctx context.Context, batchID, notes string) (models.Batch, error) {
	batch, err := s.tracker.GetBatch(ctx, batchID)
	if err != nil {
		return models.Batch{}, err
	}
	if batch.Status != models.StatusTesting {
		return models.Batch{}, &models.ValidationError{
			Field:   "batchId",
			Message: fmt.Sprintf("batch %s is %s; only batches in TESTING can be inspected", batchID, batch.Status),
		}
	}

	event := models.HistoryEvent{
		Actor:     models.ActorRegulator,
		Action:    ActionScheduled,
		Timestamp: s.now().UTC(),
		Hash:      models.NewLedgerRef(),
	}
	if strings.TrimSpace(notes) != "" {
		event.Details = map[string]any{"notes": notes}
	}

	updated, err := s.tracker.RecordEvent(ctx, batchID, event)
	if err != nil {
		return models.Batch{}, err
	}

	alert := models.Alert{
		ID:          uuid.NewString(),
		Title:       "Inspection Scheduled",
		Description: fmt.Sprintf("A regulator has scheduled an inspection for batch %s.", batchID),
		Timestamp:   s.now().UTC(),
		Type:        models.AlertInfo,
	}
	if err := s.alerts.Append(ctx, alert); err != nil {
		s.logger.Warn("failed to record inspection alert", zap.Error(err))
	}

	s.logger.Info("inspection scheduled", zap.String("batch_id", batchID))
	return updated, nil
}
