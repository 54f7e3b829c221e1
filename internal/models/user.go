package models

import (
	"time"
)

// User is the durable per-user record. Only the cooldown timestamps live
// here; inventory rows are stored separately.
type User struct {
	// ID is the Discord user ID
	ID string `json:"user_id"`

	// LastDraw is when the user last drew a single card
	LastDraw time.Time `json:"last_draw"`

	// LastPack is when the user last opened a pack
	LastPack time.Time `json:"last_pack"`

	// LastPick is when the user last started a pick
	LastPick time.Time `json:"last_pick"`
}
