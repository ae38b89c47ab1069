package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"

	"github.com/rxradar/backend/internal/domain/entities"
	"github.com/rxradar/backend/internal/domain/repositories"
	"github.com/rxradar/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/rxradar/backend/pkg/errors"
)

// InteractionAdapter implements InteractionRepository over the read-only
// interaction knowledge base. Rows are keyed on the lexicographic
// (min_drug_name, max_drug_name) pair, so one normalized lookup covers both
// argument orders.
type InteractionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewInteractionAdapter creates a new interaction adapter
func NewInteractionAdapter(client *postgres.Client) repositories.InteractionRepository {
	return &InteractionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// FindInteraction looks up the record for an ingredient pair. A miss is
// (nil, nil): absence of knowledge is a domain outcome, not an error.
func (a *InteractionAdapter) FindInteraction(ctx context.Context, ingredientA, ingredientB string) (*entities.InteractionRecord, error) {
	minName, maxName := entities.PairKey(ingredientA, ingredientB)

	query, args, err := a.db.From("interactions").
		Select(
			"min_drug_name", "max_drug_name", "severity", "description",
			"atc_group_context", "min_drug_class", "max_drug_class",
			"min_mechanism_of_action", "max_mechanism_of_action",
			"min_route_of_elimination", "max_route_of_elimination",
			"min_toxicity", "max_toxicity", "effects_summary",
		).
		Where(goqu.Ex{"min_drug_name": minName, "max_drug_name": maxName}).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build select query", err)
	}

	record := &entities.InteractionRecord{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&record.MinDrugName,
		&record.MaxDrugName,
		&record.Severity,
		&record.Description,
		&record.ATCGroupContext,
		&record.MinDrugClass,
		&record.MaxDrugClass,
		&record.MinMechanismOfAction,
		&record.MaxMechanismOfAction,
		&record.MinRouteOfElimination,
		&record.MaxRouteOfElimination,
		&record.MinToxicity,
		&record.MaxToxicity,
		&record.EffectsSummary,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get interaction", err)
	}

	return record, nil
}
