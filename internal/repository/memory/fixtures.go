package memory

import (
	"time"

	"github.com/ayurtrace/regulator/internal/domain/models"
)

func ts(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func event(actor models.Actor, action, at string, details map[string]any) models.HistoryEvent {
	return models.HistoryEvent{
		Actor:     actor,
		Action:    action,
		Timestamp: ts(at),
		Hash:      models.NewLedgerRef(),
		Details:   details,
	}
}

// SeedBatches returns the demo network's batch collection.
func SeedBatches() []models.Batch {
	return []models.Batch{
		{
			ID:           "ASH-UP-001",
			FarmerName:   "Ramesh Kumar",
			PlantType:    "Ashwagandha",
			BlockchainID: "0x1a2b3c4d5e6f7g8h9i0j",
			Status:       models.StatusShipped,
			Location:     models.Location{Lat: 26.8467, Lng: 80.9462, State: "Uttar Pradesh"},
			History: []models.HistoryEvent{
				event(models.ActorFarmer, "Batch Collected", "2023-10-01T08:00:00Z", nil),
				event(models.ActorLaboratory, "Quality Test Passed", "2023-10-02T14:00:00Z", nil),
				event(models.ActorManufacturer, "Processing Complete", "2023-10-04T10:00:00Z", nil),
				event(models.ActorLogistics, "Shipped to Distributor", "2023-10-05T18:00:00Z", nil),
			},
		},
		{
			ID:           "TUL-MP-002",
			FarmerName:   "Sunita Devi",
			PlantType:    "Tulsi",
			BlockchainID: "0x2b3c4d5e6f7g8h9i0j1a",
			Status:       models.StatusProcessed,
			Location:     models.Location{Lat: 22.9734, Lng: 78.6569, State: "Madhya Pradesh"},
			History: []models.HistoryEvent{
				event(models.ActorFarmer, "Batch Collected", "2023-10-03T09:00:00Z", nil),
				event(models.ActorLaboratory, "Quality Test Passed", "2023-10-04T16:00:00Z", nil),
				event(models.ActorManufacturer, "Processing Complete", "2023-10-06T11:00:00Z", nil),
			},
		},
		{
			ID:           "BRA-RJ-003",
			FarmerName:   "Vikram Singh",
			PlantType:    "Brahmi",
			BlockchainID: "0x3c4d5e6f7g8h9i0j1a2b",
			Status:       models.StatusTesting,
			Location:     models.Location{Lat: 27.0238, Lng: 74.2179, State: "Rajasthan"},
			History: []models.HistoryEvent{
				event(models.ActorFarmer, "Batch Collected", "2023-10-05T07:30:00Z", nil),
				event(models.ActorLogistics, "Transported to Lab", "2023-10-05T12:00:00Z", nil),
			},
		},
		{
			ID:           "NEEM-GJ-004",
			FarmerName:   "Priya Patel",
			PlantType:    "Neem",
			BlockchainID: "0x4d5e6f7g8h9i0j1a2b3c",
			Status:       models.StatusCollected,
			Location:     models.Location{Lat: 22.2587, Lng: 71.1924, State: "Gujarat"},
			History: []models.HistoryEvent{
				event(models.ActorFarmer, "Batch Collected", "2023-10-06T10:00:00Z", nil),
			},
		},
		{
			ID:           "TUL-MP-003",
			FarmerName:   "Sunita Devi",
			PlantType:    "Tulsi",
			BlockchainID: "0x5e6f7g8h9i0j1a2b3c4d",
			Status:       models.StatusRecalled,
			Location:     models.Location{Lat: 23.2599, Lng: 77.4126, State: "Madhya Pradesh"},
			History: []models.HistoryEvent{
				event(models.ActorFarmer, "Batch Collected", "2023-09-28T11:00:00Z", nil),
				event(models.ActorLaboratory, "Quality Test Failed", "2023-09-29T15:00:00Z",
					map[string]any{"reason": "Pesticide levels exceed limits"}),
				event(models.ActorRegulator, models.ActionRecalled, "2023-09-30T10:00:00Z",
					map[string]any{"reason": "Failed quality testing"}),
			},
		},
		{
			ID:           "ASH-MH-005",
			FarmerName:   "Anil Deshmukh",
			PlantType:    "Ashwagandha",
			BlockchainID: "0x6f7g8h9i0j1a2b3c4d5e",
			Status:       models.StatusShipped,
			Location:     models.Location{Lat: 19.7515, Lng: 75.7139, State: "Maharashtra"},
			History: []models.HistoryEvent{
				event(models.ActorFarmer, "Batch Collected", "2023-09-25T08:30:00Z", nil),
				event(models.ActorLaboratory, "Quality Test Passed", "2023-09-26T13:00:00Z", nil),
				event(models.ActorManufacturer, "Processing Complete", "2023-09-28T09:00:00Z", nil),
				event(models.ActorLogistics, "Shipped to Distributor", "2023-09-29T17:00:00Z", nil),
			},
		},
	}
}

// SeedAlerts returns the demo network's initial notifications.
func SeedAlerts(now time.Time) []models.Alert {
	return []models.Alert{
		{
			ID:          "ALERT1",
			Title:       "Recall Issued: TUL-MP-003",
			Description: "Batch TUL-MP-003 failed quality testing due to high pesticide levels.",
			Timestamp:   ts("2023-09-30T10:05:00Z"),
			Type:        models.AlertDanger,
		},
		{
			ID:          "ALERT2",
			Title:       "Inspection Scheduled",
			Description: "A regulator has scheduled an inspection for batch BRA-RJ-003.",
			Timestamp:   now.Add(-2 * time.Hour),
			Type:        models.AlertInfo,
		},
		{
			ID:          "ALERT3",
			Title:       "Unusual Harvest Volume",
			Description: "Farmer Ramesh Kumar reported a harvest volume 35% higher than average.",
			Timestamp:   now.Add(-24 * time.Hour),
			Type:        models.AlertWarning,
		},
	}
}
