package inventory

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/codygriffin/cardboard/internal/repositories/inventory Repository

import (
	"context"
)

// Repository defines the interface for inventory row persistence. Each row
// is one owned card instance belonging to one user.
type Repository interface {
	// AddCard inserts an inventory row for a user
	AddCard(ctx context.Context, input *AddCardInput) error

	// GetCards retrieves all inventory rows for a user in acquisition order
	GetCards(ctx context.Context, input *GetCardsInput) (*GetCardsOutput, error)

	// DeleteCard deletes an inventory row matched by (userID, instanceID)
	DeleteCard(ctx context.Context, input *DeleteCardInput) error

	// DeleteCardByObtained deletes the first inventory row matched by
	// (userID, cardID, obtainedAt)
	DeleteCardByObtained(ctx context.Context, input *DeleteCardByObtainedInput) error
}
