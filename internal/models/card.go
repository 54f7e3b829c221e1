package models

import (
	"time"
)

// CardDefinition describes a card in the catalog. Definitions are loaded
// once at startup and are read-only for the life of the process.
type CardDefinition struct {
	// ID is the unique catalog identifier for the card
	ID string `json:"id"`

	// Name is the display name of the card
	Name string `json:"name"`

	// Rarity is the rarity tier of the card
	Rarity string `json:"rarity"`

	// Set is the release set the card belongs to
	Set string `json:"set"`

	// ImageURL points at the card artwork
	ImageURL string `json:"image_url"`
}

// CardInstance is one concrete owned copy of a catalog card. Instances live
// inside a user's inventory in acquisition order.
type CardInstance struct {
	// CardID references the CardDefinition this instance was drawn from
	CardID string `json:"card_id"`

	// ObtainedAt is when the instance entered the owner's inventory
	ObtainedAt time.Time `json:"obtained_at"`

	// InstanceID is a short random identifier for this copy
	InstanceID string `json:"instance_id"`
}
