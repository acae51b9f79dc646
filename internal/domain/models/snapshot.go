package models

import "time"

// ComplianceSnapshot is the daily digest persisted by the scheduler.
type ComplianceSnapshot struct {
	Date            time.Time `bson:"date" json:"date"`
	TotalBatches    int       `bson:"total_batches" json:"total_batches"`
	ComplianceRate  string    `bson:"compliance_rate" json:"compliance_rate"`
	RecalledBatches int       `bson:"recalled_batches" json:"recalled_batches"`
	ExportReady     int       `bson:"export_ready" json:"export_ready"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}

// SnapshotFromStats lifts a derived stats value into a dated snapshot.
func SnapshotFromStats(stats Stats, now time.Time) ComplianceSnapshot {
	return ComplianceSnapshot{
		Date:            now.Truncate(24 * time.Hour),
		TotalBatches:    stats.TotalBatches,
		ComplianceRate:  stats.ComplianceRate,
		RecalledBatches: stats.RecalledBatches,
		ExportReady:     stats.ExportReady,
		CreatedAt:       now,
	}
}
