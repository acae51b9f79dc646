package models

import "fmt"

// Stats is a derived snapshot of the batch collection. It is computed, never
// stored, and recomputed on every observed change.
type Stats struct {
	TotalBatches    int    `json:"totalBatches"`
	ComplianceRate  string `json:"complianceRate"`
	RecalledBatches int    `json:"recalledBatches"`
	ExportReady     int    `json:"exportReady"`
}

// ComputeStats derives the dashboard counters from the full collection.
// An empty collection yields a 100% compliance rate.
func ComputeStats(batches []Batch) Stats {
	stats := Stats{TotalBatches: len(batches)}

	for _, b := range batches {
		switch b.Status {
		case StatusRecalled:
			stats.RecalledBatches++
		case StatusShipped:
			stats.ExportReady++
		}
	}

	if stats.TotalBatches == 0 {
		stats.ComplianceRate = "100%"
		return stats
	}

	rate := float64(stats.TotalBatches-stats.RecalledBatches) / float64(stats.TotalBatches) * 100
	stats.ComplianceRate = fmt.Sprintf("%.1f%%", rate)
	return stats
}
