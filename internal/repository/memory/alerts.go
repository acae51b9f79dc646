package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ayurtrace/regulator/internal/domain/models"
)

// AlertStore keeps session-scoped notifications. Alerts are never persisted;
// the store starts from the seed feed and grows as workflows complete.
type AlertStore struct {
	mu     sync.RWMutex
	alerts []models.Alert
}

// NewAlertStore builds an alert store pre-populated with seed.
func NewAlertStore(seed []models.Alert) *AlertStore {
	alerts := make([]models.Alert, len(seed))
	copy(alerts, seed)
	return &AlertStore{alerts: alerts}
}

// ListAlerts returns all alerts, newest first.
func (s *AlertStore) ListAlerts(_ context.Context) ([]models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Alert, len(s.alerts))
	copy(out, s.alerts)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// Append records a locally originated alert.
func (s *AlertStore) Append(_ context.Context, alert models.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, alert)
	return nil
}

// Dismiss removes the alert with the given id. Dismissing an unknown id is a
// no-op: the notification may already be gone.
func (s *AlertStore) Dismiss(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.alerts[:0]
	for _, a := range s.alerts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.alerts = kept
	return nil
}
