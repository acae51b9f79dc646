package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayurtrace/regulator/internal/config"
	"github.com/ayurtrace/regulator/internal/domain/models"
	"github.com/ayurtrace/regulator/internal/repository"
	"github.com/ayurtrace/regulator/internal/repository/memory"
	"github.com/ayurtrace/regulator/internal/service/tracking"
)

type captureStore struct {
	snapshots []models.ComplianceSnapshot
	err       error
}

func (s *captureStore) SaveSnapshot(_ context.Context, snapshot models.ComplianceSnapshot) error {
	if s.err != nil {
		return s.err
	}
	s.snapshots = append(s.snapshots, snapshot)
	return nil
}

func newScheduler(t *testing.T, seed []models.Batch, stores []repository.SnapshotStore, alerts *memory.AlertStore) *Scheduler {
	t.Helper()
	repo, err := memory.NewBatchRepository(seed, nil)
	require.NoError(t, err)

	cfg := config.SnapshotConfig{CronSchedule: "0 20 * * *", Timezone: "Asia/Kolkata"}
	return NewScheduler(cfg, tracking.NewService(repo, nil), stores, alerts, nil)
}

func TestPublishSnapshotExportsAndAlerts(t *testing.T) {
	store := &captureStore{}
	alerts := memory.NewAlertStore(nil)
	sched := newScheduler(t, memory.SeedBatches(), []repository.SnapshotStore{store}, alerts)

	sched.publishSnapshot()

	require.Len(t, store.snapshots, 1)
	snapshot := store.snapshots[0]
	assert.Equal(t, 6, snapshot.TotalBatches)
	assert.Equal(t, 1, snapshot.RecalledBatches)
	assert.Equal(t, 2, snapshot.ExportReady)
	assert.Equal(t, "83.3%", snapshot.ComplianceRate)

	feed, err := alerts.ListAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, feed, 1)
	// The seed collection carries a recalled batch, so the digest warns.
	assert.Equal(t, models.AlertWarning, feed[0].Type)
	assert.Contains(t, feed[0].Description, "83.3%")
}

func TestPublishSnapshotInfoWhenNothingRecalled(t *testing.T) {
	seed := memory.SeedBatches()
	clean := make([]models.Batch, 0, len(seed))
	for _, b := range seed {
		if b.Status != models.StatusRecalled {
			clean = append(clean, b)
		}
	}

	alerts := memory.NewAlertStore(nil)
	sched := newScheduler(t, clean, nil, alerts)

	sched.publishSnapshot()

	feed, err := alerts.ListAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, models.AlertInfo, feed[0].Type)
}

func TestPublishSnapshotSurvivesExportFailure(t *testing.T) {
	failing := &captureStore{err: errors.New("sheet unavailable")}
	working := &captureStore{}
	alerts := memory.NewAlertStore(nil)
	sched := newScheduler(t, memory.SeedBatches(), []repository.SnapshotStore{failing, working}, alerts)

	sched.publishSnapshot()

	// One export failing does not stop the others or the digest alert.
	require.Len(t, working.snapshots, 1)
	feed, err := alerts.ListAlerts(context.Background())
	require.NoError(t, err)
	assert.Len(t, feed, 1)
}
