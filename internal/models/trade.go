package models

import (
	"time"
)

// TradeStatus represents the state of a trade offer
type TradeStatus string

const (
	// TradeStatusPending indicates an offer waiting on the receiver
	TradeStatusPending TradeStatus = "pending"

	// TradeStatusAccepted indicates the receiver accepted the offer
	TradeStatusAccepted TradeStatus = "accepted"

	// TradeStatusDeclined indicates the receiver declined the offer
	TradeStatusDeclined TradeStatus = "declined"
)

// TradeOffer is a proposed transfer of a single card instance. Offers are
// ephemeral: they ride on the interaction that proposed them and are never
// persisted. An offer has no expiry of its own; the messaging platform may
// retire the interaction surface independently.
type TradeOffer struct {
	// ID is a unique identifier for the offer
	ID string

	// SenderID is the user giving up the card
	SenderID string

	// ReceiverID is the only user allowed to resolve the offer
	ReceiverID string

	// InstanceID identifies the card instance being offered
	InstanceID string

	// Status is the current state of the offer
	Status TradeStatus

	// CreatedAt is when the offer was proposed
	CreatedAt time.Time
}
