package recall

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ayurtrace/regulator/internal/domain/models"
)

// State identifies where a recall workflow is in its three-step sequence.
type State string

const (
	StateAwaitingJustification         State = "AWAITING_JUSTIFICATION"
	StateAwaitingCommunicationApproval State = "AWAITING_COMMUNICATION_APPROVAL"
	StateCompleted                     State = "COMPLETED"
)

var (
	// ErrNoWorkflow is returned when an operation targets a batch with no
	// active recall workflow.
	ErrNoWorkflow = errors.New("no active recall workflow")
	// ErrDraftInProgress guards against duplicate draft requests while a
	// generation call is pending.
	ErrDraftInProgress = errors.New("communication draft already in progress")
	// ErrWorkflowCompleted is returned when a completed workflow is asked to
	// do anything further.
	ErrWorkflowCompleted = errors.New("recall workflow already completed")
)

// Workflow is a point-in-time snapshot of one batch's recall workflow.
type Workflow struct {
	BatchID       string `json:"batchId"`
	State         State  `json:"state"`
	Reason        string `json:"reason,omitempty"`
	Communication string `json:"communication,omitempty"`
}

// Tracker is the slice of the tracking service the orchestrator drives.
type Tracker interface {
	GetBatch(ctx context.Context, id string) (models.Batch, error)
	Transition(ctx context.Context, id string, newStatus models.BatchStatus, event models.HistoryEvent) (models.Batch, error)
}

// Drafter produces the stakeholder communication for step 1.
type Drafter interface {
	RecallCommunication(ctx context.Context, batch models.Batch, reason string) (string, error)
}

// AlertSink receives the notification raised when a recall executes.
type AlertSink interface {
	Append(ctx context.Context, alert models.Alert) error
}

type workflowEntry struct {
	Workflow
	drafting bool
}

// Orchestrator runs the three-step recall workflow per batch:
// justification, communication approval, execution. Abandoning a workflow
// before completion leaves no trace in the batch history.
type Orchestrator struct {
	mu        sync.Mutex
	workflows map[string]*workflowEntry

	tracker  Tracker
	drafter  Drafter
	alerts   AlertSink
	rollback bool
	logger   *zap.Logger
	now      func() time.Time
}

// NewOrchestrator wires a new recall orchestrator. rollbackOnFailure keeps
// the workflow confirmable when the status update fails; when false the
// workflow completes anyway and the error only surfaces to the operator.
func NewOrchestrator(tracker Tracker, drafter Drafter, alerts AlertSink, rollbackOnFailure bool, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		workflows: make(map[string]*workflowEntry),
		tracker:   tracker,
		drafter:   drafter,
		alerts:    alerts,
		rollback:  rollbackOnFailure,
		logger:    logger,
		now:       time.Now,
	}
}

// Start opens a recall workflow for the batch. Starting is idempotent while
// a workflow is active; a completed workflow or an already recalled batch
// cannot be re-entered.
func (o *Orchestrator) Start(ctx context.Context, batchID string) (Workflow, error) {
	batch, err := o.tracker.GetBatch(ctx, batchID)
	if err != nil {
		return Workflow{}, err
	}
	if batch.Status == models.StatusRecalled {
		return Workflow{}, &models.ValidationError{Field: "batchId", Message: fmt.Sprintf("batch %s is already recalled", batchID)}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if entry, ok := o.workflows[batchID]; ok {
		if entry.State == StateCompleted {
			return Workflow{}, ErrWorkflowCompleted
		}
		return entry.Workflow, nil
	}

	entry := &workflowEntry{Workflow: Workflow{BatchID: batchID, State: StateAwaitingJustification}}
	o.workflows[batchID] = entry

	o.logger.Info("recall workflow started", zap.String("batch_id", batchID))
	return entry.Workflow, nil
}

// Draft runs step 1: validates the justification, calls the text-generation
// collaborator, and on success advances to communication approval. On
// failure the workflow stays in justification and the operator may retry.
// Only one draft call may be in flight per workflow.
func (o *Orchestrator) Draft(ctx context.Context, batchID, reason string) (Workflow, error) {
	if err := validateReason(reason); err != nil {
		return Workflow{}, err
	}

	o.mu.Lock()
	entry, ok := o.workflows[batchID]
	if !ok {
		o.mu.Unlock()
		return Workflow{}, ErrNoWorkflow
	}
	if entry.State == StateCompleted {
		o.mu.Unlock()
		return Workflow{}, ErrWorkflowCompleted
	}
	if entry.State != StateAwaitingJustification {
		o.mu.Unlock()
		return Workflow{}, &models.ValidationError{Field: "state", Message: "communication already drafted; confirm or cancel"}
	}
	if entry.drafting {
		o.mu.Unlock()
		return Workflow{}, ErrDraftInProgress
	}
	entry.drafting = true
	o.mu.Unlock()

	batch, err := o.tracker.GetBatch(ctx, batchID)
	if err != nil {
		o.clearDrafting(batchID)
		return Workflow{}, err
	}

	communication, err := o.drafter.RecallCommunication(ctx, batch, reason)

	o.mu.Lock()
	defer o.mu.Unlock()
	entry.drafting = false

	if err != nil {
		o.logger.Warn("recall communication draft failed", zap.String("batch_id", batchID), zap.Error(err))
		return entry.Workflow, err
	}

	entry.Reason = reason
	entry.Communication = communication
	entry.State = StateAwaitingCommunicationApproval

	o.logger.Info("recall communication drafted", zap.String("batch_id", batchID))
	return entry.Workflow, nil
}

// Confirm runs step 2: the operator approves the communication and the
// orchestrator executes the recall through the transition engine.
func (o *Orchestrator) Confirm(ctx context.Context, batchID string) (models.Batch, Workflow, error) {
	o.mu.Lock()
	entry, ok := o.workflows[batchID]
	if !ok {
		o.mu.Unlock()
		return models.Batch{}, Workflow{}, ErrNoWorkflow
	}
	if entry.State == StateCompleted {
		o.mu.Unlock()
		return models.Batch{}, entry.Workflow, ErrWorkflowCompleted
	}
	if entry.State != StateAwaitingCommunicationApproval {
		o.mu.Unlock()
		return models.Batch{}, entry.Workflow, &models.ValidationError{Field: "state", Message: "communication draft must be generated before confirming"}
	}
	reason := entry.Reason
	o.mu.Unlock()

	event := models.HistoryEvent{
		Actor:     models.ActorRegulator,
		Action:    models.ActionRecalled,
		Timestamp: o.now().UTC(),
		Hash:      models.NewLedgerRef(),
		Details:   map[string]any{"reason": reason},
	}

	updated, err := o.tracker.Transition(ctx, batchID, models.StatusRecalled, event)

	o.mu.Lock()
	defer o.mu.Unlock()

	if err != nil {
		if o.rollback {
			// Leave the workflow confirmable; nothing was written.
			o.logger.Error("recall execution failed, workflow kept open", zap.String("batch_id", batchID), zap.Error(err))
			return models.Batch{}, entry.Workflow, err
		}
		entry.State = StateCompleted
		o.logger.Error("recall execution failed, accepting eventual consistency", zap.String("batch_id", batchID), zap.Error(err))
		return models.Batch{}, entry.Workflow, err
	}

	entry.State = StateCompleted
	o.raiseAlert(ctx, updated, reason)

	o.logger.Info("recall executed", zap.String("batch_id", batchID), zap.String("reason", reason))
	return updated, entry.Workflow, nil
}

// Cancel abandons the workflow before completion. No history entries are
// written for abandoned workflows.
func (o *Orchestrator) Cancel(_ context.Context, batchID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	entry, ok := o.workflows[batchID]
	if !ok {
		return ErrNoWorkflow
	}
	if entry.State == StateCompleted {
		return ErrWorkflowCompleted
	}
	if entry.drafting {
		return ErrDraftInProgress
	}

	delete(o.workflows, batchID)
	o.logger.Info("recall workflow cancelled", zap.String("batch_id", batchID))
	return nil
}

// Get returns the current workflow snapshot for a batch.
func (o *Orchestrator) Get(_ context.Context, batchID string) (Workflow, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	entry, ok := o.workflows[batchID]
	if !ok {
		return Workflow{}, ErrNoWorkflow
	}
	return entry.Workflow, nil
}

func (o *Orchestrator) clearDrafting(batchID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if entry, ok := o.workflows[batchID]; ok {
		entry.drafting = false
	}
}

func (o *Orchestrator) raiseAlert(ctx context.Context, batch models.Batch, reason string) {
	if o.alerts == nil {
		return
	}

	alert := models.Alert{
		ID:          uuid.NewString(),
		Title:       fmt.Sprintf("Recall Issued: %s", batch.ID),
		Description: fmt.Sprintf("Batch %s (%s) has been recalled. Reason: %s", batch.ID, batch.PlantType, reason),
		Timestamp:   o.now().UTC(),
		Type:        models.AlertDanger,
	}

	if err := o.alerts.Append(ctx, alert); err != nil {
		o.logger.Warn("failed to record recall alert", zap.Error(err))
	}
}

func validateReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return &models.ValidationError{Field: "reason", Message: "must not be empty"}
	}
	return nil
}
