package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var interactionColumns = []string{
	"min_drug_name", "max_drug_name", "severity", "description",
	"atc_group_context", "min_drug_class", "max_drug_class",
	"min_mechanism_of_action", "max_mechanism_of_action",
	"min_route_of_elimination", "max_route_of_elimination",
	"min_toxicity", "max_toxicity", "effects_summary",
}

func aspirinWarfarinRow() *sqlmock.Rows {
	return sqlmock.NewRows(interactionColumns).AddRow(
		"aspirin", "warfarin", "major", "Increased bleeding risk.",
		"Antithrombotic agents", "NSAID", "Anticoagulant",
		"Inhibits platelet aggregation", "Inhibits vitamin K synthesis",
		"Renal", "Hepatic",
		"GI bleeding", "Hemorrhage", "Bleeding",
	)
}

// Both argument orders normalize to the same (min_drug_name, max_drug_name)
// query, along with casing and surrounding whitespace.
const aspirinWarfarinQuery = `SELECT .* FROM "interactions" WHERE \(\("max_drug_name" = 'warfarin'\) AND \("min_drug_name" = 'aspirin'\)\) LIMIT 1`

func TestInteractionAdapter_FindInteractionIsSymmetric(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewInteractionAdapter(client)

	mock.ExpectQuery(aspirinWarfarinQuery).WillReturnRows(aspirinWarfarinRow())
	mock.ExpectQuery(aspirinWarfarinQuery).WillReturnRows(aspirinWarfarinRow())

	forward, err := adapter.FindInteraction(context.Background(), "aspirin", "warfarin")
	require.NoError(t, err)
	reversed, err := adapter.FindInteraction(context.Background(), "  Warfarin ", "ASPIRIN")
	require.NoError(t, err)

	require.NotNil(t, forward)
	require.NotNil(t, reversed)
	assert.Equal(t, forward, reversed)
	assert.Equal(t, "aspirin", forward.MinDrugName)
	assert.Equal(t, "warfarin", forward.MaxDrugName)
	assert.Equal(t, "major", forward.Severity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInteractionAdapter_MissIsNotAnError(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewInteractionAdapter(client)

	mock.ExpectQuery(`SELECT .* FROM "interactions"`).
		WillReturnRows(sqlmock.NewRows(interactionColumns))

	record, err := adapter.FindInteraction(context.Background(), "aspirin", "acetaminophen")

	require.NoError(t, err)
	assert.Nil(t, record)
	assert.NoError(t, mock.ExpectationsWereMet())
}
