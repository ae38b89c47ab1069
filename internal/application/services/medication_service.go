package services

import (
	"context"
	"strings"

	"github.com/rxradar/backend/internal/domain/entities"
	"github.com/rxradar/backend/internal/domain/repositories"
	apperrors "github.com/rxradar/backend/pkg/errors"
)

// MedicationService persists and restores a user's medication list.
type MedicationService struct {
	userRepo repositories.UserRepository
	medRepo  repositories.MedicationRepository
}

func NewMedicationService(userRepo repositories.UserRepository, medRepo repositories.MedicationRepository) *MedicationService {
	return &MedicationService{userRepo: userRepo, medRepo: medRepo}
}

// Save replaces the user's stored list with the given one.
func (s *MedicationService) Save(ctx context.Context, username string, medications []*entities.MedicationEntry) error {
	user, err := s.lookupUser(ctx, username)
	if err != nil {
		return err
	}
	for _, med := range medications {
		if strings.TrimSpace(med.Name) == "" {
			return apperrors.NewValidationError("medication name is required")
		}
	}
	return s.medRepo.Save(ctx, user.ID, medications)
}

// Load returns the user's stored list. Loaded entries carry the resolved
// status: their ingredients were settled before they were saved.
func (s *MedicationService) Load(ctx context.Context, username string) ([]*entities.MedicationEntry, error) {
	user, err := s.lookupUser(ctx, username)
	if err != nil {
		return nil, err
	}
	medications, err := s.medRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for _, med := range medications {
		med.Status = entities.StatusResolved
	}
	return medications, nil
}

func (s *MedicationService) lookupUser(ctx context.Context, username string) (*entities.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	return user, nil
}
