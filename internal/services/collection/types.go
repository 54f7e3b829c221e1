package collection

import (
	"time"

	"github.com/codygriffin/cardboard/internal/catalog"
	"github.com/codygriffin/cardboard/internal/common/clock"
	"github.com/codygriffin/cardboard/internal/common/idgen"
	"github.com/codygriffin/cardboard/internal/common/metrics"
	"github.com/codygriffin/cardboard/internal/models"
	"github.com/codygriffin/cardboard/internal/repositories/inventory"
	"github.com/codygriffin/cardboard/internal/repositories/user"
	"github.com/codygriffin/cardboard/internal/session"
	"go.uber.org/zap"
)

// PackSize is the number of cards in one pack
const PackSize = 5

// PickSize is the number of choices offered by a pick
const PickSize = 3

// Config holds configuration for the collection service
type Config struct {
	// Session cache
	Sessions *session.Cache

	// User record repository
	UserRepo user.Repository

	// Inventory row repository
	InventoryRepo inventory.Repository

	// Card catalog
	Catalog *catalog.Catalog

	// Instance ID generator
	IDGen idgen.Generator

	// Clock for cooldown checks
	Clock clock.Clock

	// Logger for degraded durable writes
	Logger *zap.SugaredLogger

	// Metrics counters
	Metrics *metrics.Metrics

	// DrawCooldown gates single draws
	DrawCooldown time.Duration

	// PackCooldown gates pack opening
	PackCooldown time.Duration

	// PickCooldown gates pick sessions
	PickCooldown time.Duration
}

// OwnedCard pairs an owned instance with its catalog definition
type OwnedCard struct {
	Card     *models.CardDefinition
	Instance *models.CardInstance
}

// DrawInput contains parameters for drawing a card
type DrawInput struct {
	UserID string
}

// DrawOutput contains the result of drawing a card
type DrawOutput struct {
	Card     *models.CardDefinition
	Instance *models.CardInstance

	// Persisted is false when any durable write for this draw failed. The
	// in-memory result above still stands.
	Persisted bool
}

// OpenPackInput contains parameters for opening a pack
type OpenPackInput struct {
	UserID string
}

// OpenPackOutput contains the result of opening a pack
type OpenPackOutput struct {
	Cards []*OwnedCard

	// Persisted is false when any durable write for this pack failed
	Persisted bool
}

// StartPickInput contains parameters for starting a pick
type StartPickInput struct {
	UserID string
}

// StartPickOutput contains the three offered choices
type StartPickOutput struct {
	Choices []*models.CardDefinition

	// Persisted is false when the cooldown write failed
	Persisted bool
}

// ResolvePickInput contains parameters for resolving a pick
type ResolvePickInput struct {
	UserID string

	// Slot is the zero-based position within the offered choices
	Slot int
}

// ResolvePickOutput contains the committed card
type ResolvePickOutput struct {
	Card     *models.CardDefinition
	Instance *models.CardInstance

	// Persisted is false when the durable insert failed
	Persisted bool
}

// TrashInput contains parameters for trashing a card
type TrashInput struct {
	UserID string

	// Index is the zero-based position within the inventory listing
	Index int
}

// TrashOutput contains the removed card
type TrashOutput struct {
	Card     *models.CardDefinition
	Instance *models.CardInstance

	// Persisted is false when the durable delete failed
	Persisted bool
}

// GetCollectionInput contains parameters for listing an inventory
type GetCollectionInput struct {
	UserID string
}

// GetCollectionOutput contains the inventory listing
type GetCollectionOutput struct {
	Cards []*OwnedCard
}

// GetCooldownsInput contains parameters for reading cooldown state
type GetCooldownsInput struct {
	UserID string
}

// GetCooldownsOutput reports the remaining wait per action; zero means the
// action is available now
type GetCooldownsOutput struct {
	DrawRemaining time.Duration
	PackRemaining time.Duration
	PickRemaining time.Duration
}
