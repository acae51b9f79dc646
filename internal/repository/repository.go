package repository

import (
	"context"

	"github.com/ayurtrace/regulator/internal/domain/models"
)

// BatchRepository is the system of record for batches. Implementations must
// apply UpdateStatus atomically: callers never observe a batch whose status
// changed without the matching history event, or the reverse.
type BatchRepository interface {
	ListBatches(ctx context.Context) ([]models.Batch, error)
	GetBatch(ctx context.Context, id string) (models.Batch, error)
	UpdateStatus(ctx context.Context, id string, status models.BatchStatus, event models.HistoryEvent) (models.Batch, error)
}

// SnapshotStore persists daily compliance snapshots.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snapshot models.ComplianceSnapshot) error
}
