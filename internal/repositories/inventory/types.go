package inventory

import (
	"time"

	"github.com/codygriffin/cardboard/internal/models"
)

// AddCardInput contains parameters for inserting an inventory row
type AddCardInput struct {
	UserID   string
	Instance *models.CardInstance
}

// GetCardsInput contains parameters for retrieving a user's inventory rows
type GetCardsInput struct {
	UserID string
}

// GetCardsOutput contains a user's inventory rows in acquisition order
type GetCardsOutput struct {
	Instances []*models.CardInstance
}

// DeleteCardInput contains parameters for deleting a row by instance ID
type DeleteCardInput struct {
	UserID     string
	InstanceID string
}

// DeleteCardByObtainedInput contains parameters for deleting a row by card
// ID and acquisition time
type DeleteCardByObtainedInput struct {
	UserID     string
	CardID     string
	ObtainedAt time.Time
}
