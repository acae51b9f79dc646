package memory

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ayurtrace/regulator/internal/domain/models"
)

// BatchRepository is an in-memory system of record. It is the default backend
// and seeds itself with the demo network's batches unless told otherwise.
// Updates replace the whole stored value, so readers holding a previously
// returned batch never observe a partial write.
type BatchRepository struct {
	mu      sync.RWMutex
	batches map[string]models.Batch
	order   []string
	logger  *zap.Logger
}

// NewBatchRepository builds a repository pre-populated with the provided
// batches. Structurally invalid batches are rejected up front.
func NewBatchRepository(seed []models.Batch, logger *zap.Logger) (*BatchRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	repo := &BatchRepository{
		batches: make(map[string]models.Batch, len(seed)),
		logger:  logger,
	}

	for _, b := range seed {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("seed batch %q: %w", b.ID, err)
		}
		if _, exists := repo.batches[b.ID]; exists {
			return nil, fmt.Errorf("seed batch %q: duplicate id", b.ID)
		}
		repo.batches[b.ID] = b
		repo.order = append(repo.order, b.ID)
	}

	return repo, nil
}

// ListBatches returns the full collection in insertion order.
func (r *BatchRepository) ListBatches(_ context.Context) ([]models.Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Batch, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.batches[id])
	}
	return out, nil
}

// GetBatch looks up one batch by id.
func (r *BatchRepository) GetBatch(_ context.Context, id string) (models.Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.batches[id]
	if !ok {
		return models.Batch{}, fmt.Errorf("batch %q: %w", id, models.ErrNotFound)
	}
	return b, nil
}

// UpdateStatus replaces the stored batch with a copy carrying the new status
// and the event appended to its history. The swap happens under the write
// lock, so no caller sees one half of the update.
func (r *BatchRepository) UpdateStatus(_ context.Context, id string, status models.BatchStatus, event models.HistoryEvent) (models.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.batches[id]
	if !ok {
		return models.Batch{}, fmt.Errorf("batch %q: %w", id, models.ErrNotFound)
	}

	updated := b.WithEvent(event).WithStatus(status)
	r.batches[id] = updated

	r.logger.Info("batch status updated",
		zap.String("batch_id", id),
		zap.String("status", string(status)),
		zap.String("action", event.Action))

	return updated, nil
}
