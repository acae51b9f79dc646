package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batchWithStatus(id string, status BatchStatus) Batch {
	return Batch{
		ID:         id,
		FarmerName: "Ramesh Kumar",
		PlantType:  "Ashwagandha",
		Status:     status,
		Location:   Location{Lat: 26.8, Lng: 80.9, State: "Uttar Pradesh"},
		History: []HistoryEvent{
			{Actor: ActorFarmer, Action: "Batch Collected"},
		},
	}
}

func TestComputeStatsEmptyCollection(t *testing.T) {
	stats := ComputeStats(nil)

	assert.Equal(t, 0, stats.TotalBatches)
	assert.Equal(t, 0, stats.RecalledBatches)
	assert.Equal(t, 0, stats.ExportReady)
	assert.Equal(t, "100%", stats.ComplianceRate)
}

func TestComputeStatsFiveBatchesOneRecalled(t *testing.T) {
	batches := []Batch{
		batchWithStatus("B1", StatusCollected),
		batchWithStatus("B2", StatusRecalled),
		batchWithStatus("B3", StatusShipped),
		batchWithStatus("B4", StatusShipped),
		batchWithStatus("B5", StatusTesting),
	}

	stats := ComputeStats(batches)

	assert.Equal(t, 5, stats.TotalBatches)
	assert.Equal(t, 1, stats.RecalledBatches)
	assert.Equal(t, 2, stats.ExportReady)
	assert.Equal(t, "80.0%", stats.ComplianceRate)
}

func TestComputeStatsAllRecalled(t *testing.T) {
	batches := []Batch{
		batchWithStatus("B1", StatusRecalled),
		batchWithStatus("B2", StatusRecalled),
	}

	stats := ComputeStats(batches)
	assert.Equal(t, "0.0%", stats.ComplianceRate)
}

func TestBatchValidate(t *testing.T) {
	valid := batchWithStatus("ASH-UP-001", StatusCollected)
	require.NoError(t, valid.Validate())

	missingID := valid
	missingID.ID = ""
	err := missingID.Validate()
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	noHistory := valid
	noHistory.History = nil
	require.Error(t, noHistory.Validate())

	badStatus := valid
	badStatus.Status = "DESTROYED"
	require.Error(t, badStatus.Validate())
}

func TestWithEventCopyOnWrite(t *testing.T) {
	original := batchWithStatus("ASH-UP-001", StatusTesting)
	priorLen := len(original.History)

	event := HistoryEvent{Actor: ActorRegulator, Action: ActionRecalled}
	updated := original.WithEvent(event)

	require.Len(t, updated.History, priorLen+1)
	assert.Equal(t, event, updated.History[priorLen])

	// The caller's value is untouched.
	assert.Len(t, original.History, priorLen)
}

func TestRecallReason(t *testing.T) {
	recall := HistoryEvent{
		Actor:   ActorRegulator,
		Action:  ActionRecalled,
		Details: map[string]any{"reason": "Pesticide levels exceed limits"},
	}

	reason, ok := recall.RecallReason()
	require.True(t, ok)
	assert.Equal(t, "Pesticide levels exceed limits", reason)

	other := HistoryEvent{Actor: ActorLaboratory, Action: "Quality Test Failed", Details: map[string]any{"reason": "x"}}
	_, ok = other.RecallReason()
	assert.False(t, ok)

	noDetails := HistoryEvent{Actor: ActorRegulator, Action: ActionRecalled}
	_, ok = noDetails.RecallReason()
	assert.False(t, ok)
}
