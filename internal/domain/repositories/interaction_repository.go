package repositories

import (
	"context"

	"github.com/rxradar/backend/internal/domain/entities"
)

// InteractionRepository looks up interaction knowledge for an ingredient pair.
// Lookups are symmetric: FindInteraction(a, b) and FindInteraction(b, a)
// resolve to the same record. A miss returns (nil, nil), not an error.
type InteractionRepository interface {
	FindInteraction(ctx context.Context, ingredientA, ingredientB string) (*entities.InteractionRecord, error)
}

// InteractionLogRepository persists single-pair check results.
type InteractionLogRepository interface {
	Create(ctx context.Context, log *entities.InteractionLog) error
}
