package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rxradar/backend/internal/domain/entities"
	apperrors "github.com/rxradar/backend/pkg/errors"
)

// MockMedicationRepo is a mock implementation of MedicationRepository
type MockMedicationRepo struct {
	mock.Mock
}

func (m *MockMedicationRepo) Save(ctx context.Context, userID string, medications []*entities.MedicationEntry) error {
	args := m.Called(ctx, userID, medications)
	return args.Error(0)
}

func (m *MockMedicationRepo) ListByUser(ctx context.Context, userID string) ([]*entities.MedicationEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.MedicationEntry), args.Error(1)
}

func TestMedicationService_SaveResolvesUserID(t *testing.T) {
	userRepo := new(MockUserRepo)
	medRepo := new(MockMedicationRepo)
	service := NewMedicationService(userRepo, medRepo)

	userRepo.On("GetByUsername", mock.Anything, "margaret").
		Return(&entities.User{ID: "user-1", Username: "margaret"}, nil)
	medRepo.On("Save", mock.Anything, "user-1", mock.Anything).Return(nil)

	err := service.Save(context.Background(), "margaret", []*entities.MedicationEntry{
		{Name: "Aspirin", ActiveIngredients: []string{"aspirin"}},
	})

	require.NoError(t, err)
	medRepo.AssertExpectations(t)
}

func TestMedicationService_SaveUnknownUser(t *testing.T) {
	userRepo := new(MockUserRepo)
	medRepo := new(MockMedicationRepo)
	service := NewMedicationService(userRepo, medRepo)

	userRepo.On("GetByUsername", mock.Anything, "nobody").Return(nil, nil)

	err := service.Save(context.Background(), "nobody", nil)

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
	medRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestMedicationService_SaveRejectsUnnamedEntry(t *testing.T) {
	userRepo := new(MockUserRepo)
	medRepo := new(MockMedicationRepo)
	service := NewMedicationService(userRepo, medRepo)

	userRepo.On("GetByUsername", mock.Anything, "margaret").
		Return(&entities.User{ID: "user-1", Username: "margaret"}, nil)

	err := service.Save(context.Background(), "margaret", []*entities.MedicationEntry{
		{Name: "   "},
	})

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	medRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestMedicationService_LoadMarksEntriesResolved(t *testing.T) {
	userRepo := new(MockUserRepo)
	medRepo := new(MockMedicationRepo)
	service := NewMedicationService(userRepo, medRepo)

	userRepo.On("GetByUsername", mock.Anything, "margaret").
		Return(&entities.User{ID: "user-1", Username: "margaret"}, nil)
	medRepo.On("ListByUser", mock.Anything, "user-1").Return([]*entities.MedicationEntry{
		{Name: "Aspirin", ActiveIngredients: []string{"aspirin"}},
		{Name: "Tylenol PM", ActiveIngredients: []string{"acetaminophen", "diphenhydramine"}},
	}, nil)

	medications, err := service.Load(context.Background(), "margaret")

	require.NoError(t, err)
	require.Len(t, medications, 2)
	for _, med := range medications {
		assert.Equal(t, entities.StatusResolved, med.Status)
	}
}
