package repositories

import (
	"context"

	"github.com/rxradar/backend/internal/domain/entities"
)

// UserRepository defines the interface for user account operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entities.User) error

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
}

// MedicationRepository defines the interface for persisted medication lists.
// Save uses replace-all semantics: the user's previous list is dropped and the
// new one written in a single transaction.
type MedicationRepository interface {
	// Save replaces the user's medication list
	Save(ctx context.Context, userID string, medications []*entities.MedicationEntry) error

	// ListByUser loads the user's medication list
	ListByUser(ctx context.Context, userID string) ([]*entities.MedicationEntry, error)
}
