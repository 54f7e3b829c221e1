package user

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/codygriffin/cardboard/internal/repositories/user Repository

import (
	"context"

	"github.com/codygriffin/cardboard/internal/models"
)

// Repository defines the interface for user record persistence
type Repository interface {
	// GetUser retrieves a user record by ID
	GetUser(ctx context.Context, input *GetUserInput) (*models.User, error)

	// SaveUser upserts a user record, including its cooldown timestamps
	SaveUser(ctx context.Context, input *SaveUserInput) error
}
