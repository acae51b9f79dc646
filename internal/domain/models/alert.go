package models

import "time"

// AlertType grades the severity of a notification.
type AlertType string

const (
	AlertDanger  AlertType = "danger"
	AlertWarning AlertType = "warning"
	AlertInfo    AlertType = "info"
)

// Alert is a transient, session-scoped notification shown to the regulator.
type Alert struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Type        AlertType `json:"type"`
}
