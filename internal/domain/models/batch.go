package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// BatchStatus enumerates the lifecycle stages of a tracked batch.
type BatchStatus string

const (
	StatusCollected BatchStatus = "COLLECTED"
	StatusTesting   BatchStatus = "TESTING"
	StatusProcessed BatchStatus = "PROCESSED"
	StatusShipped   BatchStatus = "SHIPPED"
	StatusRecalled  BatchStatus = "RECALLED"
)

// Valid reports whether the status belongs to the closed enumeration.
func (s BatchStatus) Valid() bool {
	switch s {
	case StatusCollected, StatusTesting, StatusProcessed, StatusShipped, StatusRecalled:
		return true
	}
	return false
}

// Actor enumerates the supply-chain participant roles that can stamp history events.
type Actor string

const (
	ActorFarmer       Actor = "Farmer"
	ActorLaboratory   Actor = "Laboratory"
	ActorManufacturer Actor = "Manufacturer"
	ActorRegulator    Actor = "Regulator"
	ActorLogistics    Actor = "Logistics"
)

// Location is the geographic origin of a batch.
type Location struct {
	Lat   float64 `bson:"lat" json:"lat"`
	Lng   float64 `bson:"lng" json:"lng"`
	State string  `bson:"state" json:"state"`
}

// HistoryEvent is one immutable, actor-attributed audit entry on a batch.
// Details carries an open payload keyed by action kind; the known recall
// variant exposes its reason through RecallReason.
type HistoryEvent struct {
	Actor     Actor          `bson:"actor" json:"actor"`
	Action    string         `bson:"action" json:"action"`
	Timestamp time.Time      `bson:"timestamp" json:"timestamp"`
	Hash      string         `bson:"hash" json:"hash"`
	Details   map[string]any `bson:"details,omitempty" json:"details,omitempty"`
}

// ActionRecalled is the action label stamped by the recall workflow.
const ActionRecalled = "Batch Recalled"

// RecallReason returns the recall justification carried in the details
// payload, or false when the event is not a recall entry.
func (e HistoryEvent) RecallReason() (string, bool) {
	if e.Action != ActionRecalled || e.Details == nil {
		return "", false
	}
	reason, ok := e.Details["reason"].(string)
	return reason, ok
}

// Batch represents one traceable lot of herbal product.
type Batch struct {
	ID           string         `bson:"_id" json:"id"`
	FarmerName   string         `bson:"farmer_name" json:"farmerName"`
	PlantType    string         `bson:"plant_type" json:"plantType"`
	BlockchainID string         `bson:"blockchain_id" json:"blockchainId"`
	Status       BatchStatus    `bson:"status" json:"status"`
	Location     Location       `bson:"location" json:"location"`
	History      []HistoryEvent `bson:"history" json:"history"`
}

// Validate reports whether the batch is structurally complete. Partial
// batches are never admitted into the collection.
func (b Batch) Validate() error {
	switch {
	case b.ID == "":
		return &ValidationError{Field: "id", Message: "must not be empty"}
	case b.FarmerName == "":
		return &ValidationError{Field: "farmerName", Message: "must not be empty"}
	case b.PlantType == "":
		return &ValidationError{Field: "plantType", Message: "must not be empty"}
	case b.Location.State == "":
		return &ValidationError{Field: "location.state", Message: "must not be empty"}
	case !b.Status.Valid():
		return &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", b.Status)}
	case len(b.History) == 0:
		return &ValidationError{Field: "history", Message: "must contain at least the creation event"}
	}
	return nil
}

// WithEvent returns a copy of the batch whose history is the prior history
// with event appended. The receiver and its history are left untouched, so
// callers holding the old value never observe the append.
func (b Batch) WithEvent(event HistoryEvent) Batch {
	history := make([]HistoryEvent, len(b.History), len(b.History)+1)
	copy(history, b.History)
	b.History = append(history, event)
	return b
}

// WithStatus returns a copy of the batch with the status replaced.
func (b Batch) WithStatus(status BatchStatus) Batch {
	b.Status = status
	return b
}

// NewLedgerRef produces an opaque ledger reference for a history event. The
// core never parses or validates these.
func NewLedgerRef() string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return "0x" + hex.EncodeToString(buf) + "..."
}
