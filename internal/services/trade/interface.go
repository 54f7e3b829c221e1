package trade

import "context"

// Service defines the interface for trade operations
type Service interface {
	// ProposeTrade builds a pending offer for a card in the sender's
	// inventory. Nothing is mutated until the receiver resolves it.
	ProposeTrade(ctx context.Context, input *ProposeTradeInput) (*ProposeTradeOutput, error)

	// ResolveTrade accepts or declines a pending offer. Only the named
	// receiver may resolve it.
	ResolveTrade(ctx context.Context, input *ResolveTradeInput) (*ResolveTradeOutput, error)
}
