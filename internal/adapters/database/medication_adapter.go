package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/rxradar/backend/internal/domain/entities"
	"github.com/rxradar/backend/internal/domain/repositories"
	"github.com/rxradar/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/rxradar/backend/pkg/errors"
)

// MedicationAdapter implements MedicationRepository. Ingredient lists are
// stored comma-joined in a single column and split back on load.
type MedicationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewMedicationAdapter creates a new medication adapter
func NewMedicationAdapter(client *postgres.Client) repositories.MedicationRepository {
	return &MedicationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Save replaces the user's medication list in one transaction: the previous
// rows are deleted and the new list inserted, so a failure leaves the stored
// list untouched.
func (a *MedicationAdapter) Save(ctx context.Context, userID string, medications []*entities.MedicationEntry) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	deleteQuery, deleteArgs, err := a.db.Delete("user_medications").
		Where(goqu.Ex{"user_id": userID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return apperrors.NewInternalError("failed to clear medications", err)
	}

	for _, med := range medications {
		record := goqu.Record{
			"id":                 uuid.New().String(),
			"user_id":            userID,
			"name":               med.Name,
			"dosage":             med.Dosage,
			"frequency":          med.Frequency,
			"active_ingredients": entities.JoinIngredients(med.ActiveIngredients),
		}
		insertQuery, insertArgs, err := a.db.Insert("user_medications").Rows(record).ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build insert query", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return apperrors.NewInternalError("failed to save medication", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit medications", err)
	}
	return nil
}

// ListByUser loads the user's medication list in insertion order.
func (a *MedicationAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.MedicationEntry, error) {
	query, args, err := a.db.From("user_medications").
		Select("name", "dosage", "frequency", "active_ingredients").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build select query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list medications", err)
	}
	defer rows.Close()

	var medications []*entities.MedicationEntry
	for rows.Next() {
		med := &entities.MedicationEntry{}
		var ingredients string
		if err := rows.Scan(&med.Name, &med.Dosage, &med.Frequency, &ingredients); err != nil {
			return nil, apperrors.NewInternalError("failed to scan medication", err)
		}
		med.ActiveIngredients = entities.SplitIngredients(ingredients)
		medications = append(medications, med)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate medications", err)
	}

	return medications, nil
}
