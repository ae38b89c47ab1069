package services

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/rxradar/backend/internal/domain/entities"
	"github.com/rxradar/backend/internal/domain/providers"
	"github.com/rxradar/backend/internal/domain/repositories"
	"github.com/rxradar/backend/internal/infrastructure/observability"
	apperrors "github.com/rxradar/backend/pkg/errors"
)

// AnalysisService runs a resolved medication batch through pair
// classification and alert synthesis.
type AnalysisService struct {
	interactionRepo repositories.InteractionRepository
	logRepo         repositories.InteractionLogRepository
	composer        providers.AlertComposer
	metrics         *observability.Metrics
}

// NewAnalysisService creates the service. logRepo and metrics may be nil:
// single-pair checks then skip audit logging, and no metrics are recorded.
func NewAnalysisService(
	interactionRepo repositories.InteractionRepository,
	logRepo repositories.InteractionLogRepository,
	composer providers.AlertComposer,
	metrics *observability.Metrics,
) *AnalysisService {
	return &AnalysisService{
		interactionRepo: interactionRepo,
		logRepo:         logRepo,
		composer:        composer,
		metrics:         metrics,
	}
}

// Analyze classifies the batch's ingredient pairs and returns the alert list:
// duplicate alerts first, in classification order, then interaction alerts in
// pair-generation order. Interaction pairs are synthesized concurrently, each
// into its own result slot; a failing pair yields an error alert for that
// pair only and never aborts its siblings.
func (s *AnalysisService) Analyze(ctx context.Context, entries []*entities.MedicationEntry) ([]entities.Alert, error) {
	if len(entries) == 0 {
		return nil, apperrors.NewValidationError("at least one medication is required")
	}

	ctx, span := observability.StartSpan(ctx, "AnalysisService.Analyze")
	defer span.End()

	classification := ClassifyPairs(entries)
	observability.SetSpanAttributes(span,
		attribute.Int("analysis.duplicate_groups", len(classification.Duplicates)),
		attribute.Int("analysis.interaction_pairs", len(classification.Pairs)),
	)
	if s.metrics != nil {
		observability.RecordPairCount(ctx, s.metrics, len(classification.Pairs))
	}

	alerts := make([]entities.Alert, 0, len(classification.Duplicates)+len(classification.Pairs))
	for _, group := range classification.Duplicates {
		alerts = append(alerts, entities.Alert{
			DrugsInvolved: group.EntryNames,
			AlertMessage: fmt.Sprintf(
				"You have entered medications with the same active ingredient: '%s'. Please review your medications to avoid potential overdosing, dangerous side effects, and/or unnecessary medication.",
				titleCaser.String(group.Ingredient),
			),
		})
	}

	interactionAlerts := make([]entities.Alert, len(classification.Pairs))
	g, gctx := errgroup.WithContext(ctx)
	for i, pair := range classification.Pairs {
		i, pair := i, pair
		g.Go(func() error {
			interactionAlerts[i] = s.synthesizePair(gctx, pair)
			return nil
		})
	}
	// Tasks never return errors, each failure is folded into its own slot.
	_ = g.Wait()

	return append(alerts, interactionAlerts...), nil
}

func (s *AnalysisService) synthesizePair(ctx context.Context, pair IngredientPair) entities.Alert {
	drugsInvolved := []string{
		strings.Join(pair.EntryNamesA, " / "),
		strings.Join(pair.EntryNamesB, " / "),
	}

	message, err := s.explain(ctx, pair.IngredientA, pair.IngredientB)
	if err != nil {
		observability.LoggerFromContext(ctx).Error().
			Err(err).
			Str("ingredient_a", pair.IngredientA).
			Str("ingredient_b", pair.IngredientB).
			Msg("interaction synthesis failed")
		return entities.Alert{
			DrugsInvolved: drugsInvolved,
			AlertMessage:  fmt.Sprintf("Error analyzing: %s", err.Error()),
		}
	}

	return entities.Alert{
		DrugsInvolved: drugsInvolved,
		AlertMessage:  message,
	}
}

// CheckInteraction explains a single drug pair and records the check for
// auditing. A missing knowledge-base row is not an error: the composer is
// still asked to phrase the "no known interaction" outcome.
func (s *AnalysisService) CheckInteraction(ctx context.Context, drug1, drug2 string) (string, error) {
	drug1 = strings.TrimSpace(drug1)
	drug2 = strings.TrimSpace(drug2)
	if drug1 == "" || drug2 == "" {
		return "", apperrors.NewValidationError("exactly two drug names are required")
	}

	ctx, span := observability.StartSpan(ctx, "AnalysisService.CheckInteraction")
	defer span.End()

	explanation, err := s.explain(ctx, drug1, drug2)
	if err != nil {
		return "", err
	}

	if s.logRepo != nil {
		log := &entities.InteractionLog{Drug1: drug1, Drug2: drug2, Summary: explanation}
		if err := s.logRepo.Create(ctx, log); err != nil {
			// Audit logging must not block the answer.
			observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to persist interaction log")
		}
	}

	return explanation, nil
}

func (s *AnalysisService) explain(ctx context.Context, drug1, drug2 string) (string, error) {
	drug1 = strings.ToLower(strings.TrimSpace(drug1))
	drug2 = strings.ToLower(strings.TrimSpace(drug2))

	record, err := s.interactionRepo.FindInteraction(ctx, drug1, drug2)
	if err != nil {
		return "", err
	}

	prompt := composeAlertPrompt(BuildInteractionContext(record, drug1, drug2))
	return s.composer.Generate(ctx, prompt)
}
