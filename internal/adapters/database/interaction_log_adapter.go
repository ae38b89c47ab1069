package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/rxradar/backend/internal/domain/entities"
	"github.com/rxradar/backend/internal/domain/repositories"
	"github.com/rxradar/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/rxradar/backend/pkg/errors"
)

// InteractionLogAdapter implements InteractionLogRepository
type InteractionLogAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewInteractionLogAdapter creates a new interaction log adapter
func NewInteractionLogAdapter(client *postgres.Client) repositories.InteractionLogRepository {
	return &InteractionLogAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists one single-pair check result
func (a *InteractionLogAdapter) Create(ctx context.Context, log *entities.InteractionLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	record := goqu.Record{
		"id":         log.ID,
		"drug1":      log.Drug1,
		"drug2":      log.Drug2,
		"summary":    log.Summary,
		"created_at": log.CreatedAt,
	}

	query, args, err := a.db.Insert("interaction_logs").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create interaction log", err)
	}

	return nil
}
