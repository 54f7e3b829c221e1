package guildconfig

import (
	"context"
)

// Repository defines the interface for guild configuration persistence
type Repository interface {
	// GetChannel retrieves the channel a guild has restricted the bot to
	GetChannel(ctx context.Context, input *GetChannelInput) (*GetChannelOutput, error)

	// SetChannel restricts the bot to a single channel for a guild
	SetChannel(ctx context.Context, input *SetChannelInput) error
}
