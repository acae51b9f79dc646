package tracking

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ayurtrace/regulator/internal/domain/models"
	"github.com/ayurtrace/regulator/internal/repository"
)

// Service exposes batch queries, derived statistics, and the status
// transition engine over the system of record.
type Service struct {
	repo   repository.BatchRepository
	logger *zap.Logger
}

// NewService wires a new tracking service instance.
func NewService(repo repository.BatchRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// ListBatches returns the full batch collection.
func (s *Service) ListBatches(ctx context.Context) ([]models.Batch, error) {
	return s.repo.ListBatches(ctx)
}

// GetBatch looks up one batch by id.
func (s *Service) GetBatch(ctx context.Context, id string) (models.Batch, error) {
	return s.repo.GetBatch(ctx, id)
}

// Stats derives the dashboard counters from the current collection.
func (s *Service) Stats(ctx context.Context) (models.Stats, error) {
	batches, err := s.repo.ListBatches(ctx)
	if err != nil {
		return models.Stats{}, fmt.Errorf("load batches for stats: %w", err)
	}
	return models.ComputeStats(batches), nil
}

// Transition moves the batch to newStatus and stamps the history event. The
// repository applies both in one step, so the caller never observes a batch
// whose status and history disagree. A batch that has reached RECALLED can
// never leave it.
func (s *Service) Transition(ctx context.Context, id string, newStatus models.BatchStatus, event models.HistoryEvent) (models.Batch, error) {
	if !newStatus.Valid() {
		return models.Batch{}, &models.ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", newStatus)}
	}

	current, err := s.repo.GetBatch(ctx, id)
	if err != nil {
		return models.Batch{}, err
	}

	if current.Status == models.StatusRecalled {
		return models.Batch{}, &models.ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("batch %s is recalled; recall is irreversible", id),
		}
	}

	updated, err := s.repo.UpdateStatus(ctx, id, newStatus, event)
	if err != nil {
		return models.Batch{}, err
	}

	s.logger.Info("batch transitioned",
		zap.String("batch_id", id),
		zap.String("from", string(current.Status)),
		zap.String("to", string(newStatus)),
		zap.String("actor", string(event.Actor)))

	return updated, nil
}

// RecordEvent appends a history event without changing the batch status.
// Used for audit entries like scheduled inspections.
func (s *Service) RecordEvent(ctx context.Context, id string, event models.HistoryEvent) (models.Batch, error) {
	current, err := s.repo.GetBatch(ctx, id)
	if err != nil {
		return models.Batch{}, err
	}
	return s.repo.UpdateStatus(ctx, id, current.Status, event)
}
