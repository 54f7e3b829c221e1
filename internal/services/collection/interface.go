package collection

import "context"

// Service defines the interface for collection operations
type Service interface {
	// Draw gives the user one random card, gated by the draw cooldown
	Draw(ctx context.Context, input *DrawInput) (*DrawOutput, error)

	// OpenPack gives the user five random cards, gated by the pack cooldown
	OpenPack(ctx context.Context, input *OpenPackInput) (*OpenPackOutput, error)

	// StartPick offers the user three random cards, gated by the pick cooldown
	StartPick(ctx context.Context, input *StartPickInput) (*StartPickOutput, error)

	// ResolvePick commits one slot of an active pick into the inventory
	ResolvePick(ctx context.Context, input *ResolvePickInput) (*ResolvePickOutput, error)

	// Trash removes a card from the inventory by its listed position
	Trash(ctx context.Context, input *TrashInput) (*TrashOutput, error)

	// GetCollection lists the user's inventory in acquisition order
	GetCollection(ctx context.Context, input *GetCollectionInput) (*GetCollectionOutput, error)

	// GetCooldowns reports the remaining wait for each gated action
	GetCooldowns(ctx context.Context, input *GetCooldownsInput) (*GetCooldownsOutput, error)
}
