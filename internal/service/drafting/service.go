package drafting

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ayurtrace/regulator/internal/domain/models"
	"github.com/ayurtrace/regulator/pkg/clients/gemini"
)

const generateTimeout = 45 * time.Second

// Service builds prompts for the regulator's drafting workflows and consumes
// the generated text verbatim. No output is ever parsed or validated.
type Service struct {
	generator gemini.Client
	logger    *zap.Logger
}

// NewService wires a new drafting service instance.
func NewService(generator gemini.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{generator: generator, logger: logger}
}

func (s *Service) generate(ctx context.Context, kind, prompt string) (string, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	text, err := s.generator.Generate(ctxWithTimeout, prompt)
	if err != nil {
		s.logger.Error("draft generation failed", zap.String("kind", kind), zap.Error(err))
		return "", &models.ExternalServiceError{Service: "text-generation", Err: err}
	}

	s.logger.Info("draft generated", zap.String("kind", kind), zap.Int("chars", len(text)))
	return text, nil
}

// RecallCommunication drafts the bilingual recall notification for a batch.
func (s *Service) RecallCommunication(ctx context.Context, batch models.Batch, reason string) (string, error) {
	if strings.TrimSpace(reason) == "" {
		return "", &models.ValidationError{Field: "reason", Message: "must not be empty"}
	}
	return s.generate(ctx, "recall_communication", recallCommunicationPrompt(batch, reason))
}

// RuleDirective drafts an official compliance rule directive.
func (s *Service) RuleDirective(ctx context.Context, topic string) (string, error) {
	if strings.TrimSpace(topic) == "" {
		return "", &models.ValidationError{Field: "topic", Message: "must not be empty"}
	}
	return s.generate(ctx, "rule_directive", ruleDirectivePrompt(topic))
}

// UpgradePlan drafts a technical plan for a ledger contract upgrade.
func (s *Service) UpgradePlan(ctx context.Context, reason string) (string, error) {
	if strings.TrimSpace(reason) == "" {
		return "", &models.ValidationError{Field: "reason", Message: "must not be empty"}
	}
	return s.generate(ctx, "upgrade_plan", upgradePlanPrompt(reason))
}

// InspectionNotes drafts prioritized field-inspection notes for a batch using
// its history and the most recent alerts.
func (s *Service) InspectionNotes(ctx context.Context, batch models.Batch, alerts []models.Alert) (string, error) {
	return s.generate(ctx, "inspection_notes", inspectionNotesPrompt(batch, alerts))
}
