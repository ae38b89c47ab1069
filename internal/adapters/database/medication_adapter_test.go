package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxradar/backend/internal/domain/entities"
	"github.com/rxradar/backend/internal/infrastructure/clients/postgres"
)

func setupMockDB(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return postgres.NewClientFromDB(mockDB), mock
}

func TestMedicationAdapter_SaveReplacesList(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewMedicationAdapter(client)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "user_medications"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO "user_medications"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO "user_medications"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := adapter.Save(context.Background(), "user-1", []*entities.MedicationEntry{
		{Name: "Tylenol PM", Dosage: "500mg", Frequency: "nightly", ActiveIngredients: []string{"acetaminophen", "diphenhydramine"}},
		{Name: "Aspirin", Dosage: "81mg", Frequency: "daily", ActiveIngredients: []string{"aspirin"}},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicationAdapter_SaveRollsBackOnInsertFailure(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewMedicationAdapter(client)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "user_medications"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "user_medications"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := adapter.Save(context.Background(), "user-1", []*entities.MedicationEntry{
		{Name: "Aspirin", Dosage: "81mg", Frequency: "daily", ActiveIngredients: []string{"aspirin"}},
	})

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicationAdapter_ListByUserSplitsIngredients(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewMedicationAdapter(client)

	rows := sqlmock.NewRows([]string{"name", "dosage", "frequency", "active_ingredients"}).
		AddRow("Tylenol PM", "500mg", "nightly", "acetaminophen,diphenhydramine").
		AddRow("Mystery Med", "1 tablet", "daily", "")

	mock.ExpectQuery(`SELECT .* FROM "user_medications"`).WillReturnRows(rows)

	medications, err := adapter.ListByUser(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, medications, 2)
	assert.Equal(t, []string{"acetaminophen", "diphenhydramine"}, medications[0].ActiveIngredients)
	// An empty column maps to an empty slice, never [""].
	assert.Equal(t, []string{}, medications[1].ActiveIngredients)
	assert.NoError(t, mock.ExpectationsWereMet())
}
