package user

import "github.com/codygriffin/cardboard/internal/models"

// GetUserInput contains parameters for retrieving a user
type GetUserInput struct {
	UserID string
}

// SaveUserInput contains parameters for saving a user
type SaveUserInput struct {
	User *models.User
}
