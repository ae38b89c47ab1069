package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rxradar/backend/internal/domain/entities"
	apperrors "github.com/rxradar/backend/pkg/errors"
)

// Mocks

type MockInteractionRepo struct {
	mock.Mock
}

func (m *MockInteractionRepo) FindInteraction(ctx context.Context, a, b string) (*entities.InteractionRecord, error) {
	args := m.Called(ctx, a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.InteractionRecord), args.Error(1)
}

type MockInteractionLogRepo struct {
	mock.Mock
}

func (m *MockInteractionLogRepo) Create(ctx context.Context, log *entities.InteractionLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

// fakeComposer echoes prompts back and records them.
type fakeComposer struct {
	mu      sync.Mutex
	prompts []string
	reply   func(prompt string) (string, error)
}

func (c *fakeComposer) Generate(ctx context.Context, prompt string) (string, error) {
	c.mu.Lock()
	c.prompts = append(c.prompts, prompt)
	c.mu.Unlock()
	if c.reply != nil {
		return c.reply(prompt)
	}
	return "synthesized alert", nil
}

// Tests

func TestAnalyze_DuplicateAlertsComeFirst(t *testing.T) {
	repo := new(MockInteractionRepo)
	repo.On("FindInteraction", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	composer := &fakeComposer{}
	service := NewAnalysisService(repo, nil, composer, nil)

	alerts, err := service.Analyze(context.Background(), []*entities.MedicationEntry{
		entry("Aspirin", "aspirin"),
		entry("Bufferin", "aspirin", "calcium carbonate"),
	})

	require.NoError(t, err)
	require.Len(t, alerts, 2)

	// Duplicate alert first, templated, no composer call.
	assert.Equal(t, []string{"Aspirin", "Bufferin"}, alerts[0].DrugsInvolved)
	assert.Contains(t, alerts[0].AlertMessage, "same active ingredient: 'Aspirin'")
	assert.Contains(t, alerts[0].AlertMessage, "overdosing")

	// Interaction alert second; both aspirin carriers appear on one side.
	assert.Equal(t, []string{"Aspirin / Bufferin", "Bufferin"}, alerts[1].DrugsInvolved)
	assert.Equal(t, "synthesized alert", alerts[1].AlertMessage)
	assert.Len(t, composer.prompts, 1)
}

func TestAnalyze_LookupMissStillRoutedThroughComposer(t *testing.T) {
	repo := new(MockInteractionRepo)
	repo.On("FindInteraction", mock.Anything, "lisinopril", "metformin").Return(nil, nil)
	composer := &fakeComposer{}
	service := NewAnalysisService(repo, nil, composer, nil)

	alerts, err := service.Analyze(context.Background(), []*entities.MedicationEntry{
		entry("Zestril", "lisinopril"),
		entry("Metformin", "metformin"),
	})

	require.NoError(t, err)
	require.Len(t, alerts, 1)
	require.Len(t, composer.prompts, 1)
	assert.Contains(t, composer.prompts[0], "No known interaction found between Lisinopril and Metformin in the system.")
}

func TestAnalyze_RecordContextReachesComposer(t *testing.T) {
	record := &entities.InteractionRecord{
		MinDrugName:           "calcium carbonate",
		MaxDrugName:           "lisinopril",
		Severity:              "minor",
		Description:           "Calcium carbonate may reduce absorption of lisinopril.",
		ATCGroupContext:       entities.FieldNotAvailable,
		MinDrugClass:          "antacid",
		MaxDrugClass:          "ACE inhibitor",
		MinMechanismOfAction:  "neutralizing stomach acid",
		MaxMechanismOfAction:  entities.FieldNotAvailable,
		MinRouteOfElimination: entities.FieldNotAvailable,
		MaxRouteOfElimination: entities.FieldNotAvailable,
		MinToxicity:           entities.FieldNotAvailable,
		MaxToxicity:           entities.FieldNotAvailable,
		EffectsSummary:        entities.FieldNotAvailable,
	}

	repo := new(MockInteractionRepo)
	repo.On("FindInteraction", mock.Anything, mock.Anything, mock.Anything).Return(record, nil)
	composer := &fakeComposer{}
	service := NewAnalysisService(repo, nil, composer, nil)

	alerts, err := service.Analyze(context.Background(), []*entities.MedicationEntry{
		entry("Zestril", "lisinopril"),
		entry("Tums", "calcium carbonate"),
	})

	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, []string{"Zestril", "Tums"}, alerts[0].DrugsInvolved)
	require.Len(t, composer.prompts, 1)
	assert.Contains(t, composer.prompts[0], "Severity Level: Minor")
	assert.Contains(t, composer.prompts[0], "neutralizing stomach acid")
}

func TestAnalyze_FailedPairIsIsolated(t *testing.T) {
	repo := new(MockInteractionRepo)
	repo.On("FindInteraction", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	composer := &fakeComposer{
		reply: func(prompt string) (string, error) {
			if strings.Contains(prompt, "B and C") || strings.Contains(prompt, "b and c") {
				return "", errors.New("provider exploded")
			}
			return "ok", nil
		},
	}
	service := NewAnalysisService(repo, nil, composer, nil)

	alerts, err := service.Analyze(context.Background(), []*entities.MedicationEntry{
		entry("MedA", "a"),
		entry("MedB", "b"),
		entry("MedC", "c"),
	})

	require.NoError(t, err)
	require.Len(t, alerts, 3)

	// Pair order is {a,b}, {a,c}, {b,c}; only the failing pair is an error.
	assert.Equal(t, "ok", alerts[0].AlertMessage)
	assert.Equal(t, "ok", alerts[1].AlertMessage)
	assert.Contains(t, alerts[2].AlertMessage, "Error analyzing:")
	assert.Contains(t, alerts[2].AlertMessage, "provider exploded")
	assert.Equal(t, []string{"MedB", "MedC"}, alerts[2].DrugsInvolved)
}

func TestAnalyze_EmptyBatchRejected(t *testing.T) {
	service := NewAnalysisService(new(MockInteractionRepo), nil, &fakeComposer{}, nil)

	_, err := service.Analyze(context.Background(), nil)

	require.Error(t, err)
	appErr := &apperrors.AppError{}
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

func TestCheckInteraction_PersistsAuditLog(t *testing.T) {
	repo := new(MockInteractionRepo)
	repo.On("FindInteraction", mock.Anything, "aspirin", "warfarin").Return(nil, nil)
	logRepo := new(MockInteractionLogRepo)
	logRepo.On("Create", mock.Anything, mock.MatchedBy(func(log *entities.InteractionLog) bool {
		return log.Drug1 == "Aspirin" && log.Drug2 == "Warfarin" && log.Summary == "synthesized alert"
	})).Return(nil)

	service := NewAnalysisService(repo, logRepo, &fakeComposer{}, nil)

	explanation, err := service.CheckInteraction(context.Background(), "Aspirin", "Warfarin")

	require.NoError(t, err)
	assert.Equal(t, "synthesized alert", explanation)
	logRepo.AssertExpectations(t)
}

func TestCheckInteraction_LogFailureDoesNotBlockAnswer(t *testing.T) {
	repo := new(MockInteractionRepo)
	repo.On("FindInteraction", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	logRepo := new(MockInteractionLogRepo)
	logRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	service := NewAnalysisService(repo, logRepo, &fakeComposer{}, nil)

	explanation, err := service.CheckInteraction(context.Background(), "aspirin", "warfarin")

	require.NoError(t, err)
	assert.Equal(t, "synthesized alert", explanation)
}

func TestCheckInteraction_RequiresBothNames(t *testing.T) {
	service := NewAnalysisService(new(MockInteractionRepo), nil, &fakeComposer{}, nil)

	_, err := service.CheckInteraction(context.Background(), "aspirin", "  ")

	require.Error(t, err)
	appErr := &apperrors.AppError{}
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}
