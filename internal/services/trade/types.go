package trade

import (
	"github.com/codygriffin/cardboard/internal/catalog"
	"github.com/codygriffin/cardboard/internal/common/clock"
	"github.com/codygriffin/cardboard/internal/common/metrics"
	"github.com/codygriffin/cardboard/internal/models"
	"github.com/codygriffin/cardboard/internal/repositories/inventory"
	"github.com/codygriffin/cardboard/internal/session"
	"go.uber.org/zap"
)

// Config holds configuration for the trade service
type Config struct {
	// Session cache
	Sessions *session.Cache

	// Inventory row repository
	InventoryRepo inventory.Repository

	// Card catalog, for rendering offers
	Catalog *catalog.Catalog

	// Clock for offer and transfer timestamps
	Clock clock.Clock

	// Logger for degraded durable writes
	Logger *zap.SugaredLogger

	// Metrics counters
	Metrics *metrics.Metrics
}

// ProposeTradeInput contains parameters for proposing a trade
type ProposeTradeInput struct {
	SenderID   string
	ReceiverID string

	// CardIndex is the zero-based position of the offered card within the
	// sender's inventory listing
	CardIndex int
}

// ProposeTradeOutput contains the pending offer and the offered card
type ProposeTradeOutput struct {
	Offer *models.TradeOffer
	Card  *models.CardDefinition
}

// ResolveTradeInput contains parameters for resolving a trade
type ResolveTradeInput struct {
	// Offer is the pending offer, decoded from the interaction that
	// carried it
	Offer *models.TradeOffer

	// ActorID is the user attempting to resolve the offer
	ActorID string

	// Accept resolves the offer into accepted when true, declined when
	// false
	Accept bool
}

// ResolveTradeOutput contains the resolved offer
type ResolveTradeOutput struct {
	Offer *models.TradeOffer

	// Card is the definition of the traded card, when known
	Card *models.CardDefinition

	// Persisted is false when any durable write for the transfer failed.
	// The in-memory transfer above still stands.
	Persisted bool
}
