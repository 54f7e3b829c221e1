package trade

import (
	"context"

	"github.com/codygriffin/cardboard/internal/catalog"
	"github.com/codygriffin/cardboard/internal/common/clock"
	"github.com/codygriffin/cardboard/internal/common/metrics"
	"github.com/codygriffin/cardboard/internal/models"
	"github.com/codygriffin/cardboard/internal/repositories/inventory"
	"github.com/codygriffin/cardboard/internal/session"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// service implements the Service interface
type service struct {
	sessions      *session.Cache
	inventoryRepo inventory.Repository
	catalog       *catalog.Catalog
	clock         clock.Clock
	logger        *zap.SugaredLogger
	metrics       *metrics.Metrics
}

// New creates a new trade service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Sessions == nil {
		return nil, ErrNilSessions
	}
	if cfg.InventoryRepo == nil {
		return nil, ErrNilInventory
	}
	if cfg.Catalog == nil {
		return nil, ErrNilCatalog
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.Logger == nil {
		return nil, ErrNilLogger
	}
	if cfg.Metrics == nil {
		return nil, ErrNilMetrics
	}

	return &service{
		sessions:      cfg.Sessions,
		inventoryRepo: cfg.InventoryRepo,
		catalog:       cfg.Catalog,
		clock:         cfg.Clock,
		logger:        cfg.Logger,
		metrics:       cfg.Metrics,
	}, nil
}

// ProposeTrade builds a pending offer for a card in the sender's inventory
func (s *service) ProposeTrade(ctx context.Context, input *ProposeTradeInput) (*ProposeTradeOutput, error) {
	if input.SenderID == input.ReceiverID {
		return nil, ErrSelfTrade
	}

	sender, err := s.sessions.GetOrLoad(ctx, input.SenderID)
	if err != nil {
		return nil, err
	}

	sender.Lock()
	defer sender.Unlock()

	if input.CardIndex < 0 || input.CardIndex >= len(sender.Inventory) {
		return nil, ErrIndexOutOfRange
	}

	instance := sender.Inventory[input.CardIndex]

	offer := &models.TradeOffer{
		ID:         uuid.New().String(),
		SenderID:   input.SenderID,
		ReceiverID: input.ReceiverID,
		InstanceID: instance.InstanceID,
		Status:     models.TradeStatusPending,
		CreatedAt:  s.clock.Now(),
	}

	return &ProposeTradeOutput{
		Offer: offer,
		Card:  s.lookup(instance.CardID),
	}, nil
}

// ResolveTrade accepts or declines a pending offer. On accept the offered
// instance moves from sender to receiver keeping its instance ID, so the
// population holds exactly one instance with that ID before and after.
func (s *service) ResolveTrade(ctx context.Context, input *ResolveTradeInput) (*ResolveTradeOutput, error) {
	offer := input.Offer

	if offer.Status != models.TradeStatusPending {
		return nil, ErrNotPending
	}

	if input.ActorID != offer.ReceiverID {
		return nil, ErrNotReceiver
	}

	if !input.Accept {
		offer.Status = models.TradeStatusDeclined
		s.metrics.TradesDeclined.Inc()
		return &ResolveTradeOutput{
			Offer:     offer,
			Persisted: true,
		}, nil
	}

	sender, err := s.sessions.GetOrLoad(ctx, offer.SenderID)
	if err != nil {
		return nil, err
	}
	receiver, err := s.sessions.GetOrLoad(ctx, offer.ReceiverID)
	if err != nil {
		return nil, err
	}

	// Lock both sessions in a fixed order so two opposing trades cannot
	// deadlock.
	first, second := sender, receiver
	if second.UserID < first.UserID {
		first, second = second, first
	}
	first.Lock()
	defer first.Unlock()
	second.Lock()
	defer second.Unlock()

	// The sender may have trashed or traded the card since the offer was
	// proposed; abort without mutating either inventory.
	pos := sender.FindInstance(offer.InstanceID)
	if pos < 0 {
		return nil, ErrInstanceGone
	}

	outgoing := sender.Inventory[pos]
	sender.Inventory = append(sender.Inventory[:pos], sender.Inventory[pos+1:]...)

	incoming := &models.CardInstance{
		CardID:     outgoing.CardID,
		ObtainedAt: s.clock.Now(),
		InstanceID: outgoing.InstanceID,
	}
	receiver.Inventory = append(receiver.Inventory, incoming)

	persisted := true
	if err := s.inventoryRepo.DeleteCard(ctx, &inventory.DeleteCardInput{
		UserID:     sender.UserID,
		InstanceID: outgoing.InstanceID,
	}); err != nil {
		s.logger.Errorw("failed to delete sender row, cache and store diverge",
			"user_id", sender.UserID, "instance_id", outgoing.InstanceID, "error", err)
		persisted = false
	}

	if err := s.inventoryRepo.AddCard(ctx, &inventory.AddCardInput{
		UserID:   receiver.UserID,
		Instance: incoming,
	}); err != nil {
		s.logger.Errorw("failed to insert receiver row, cache and store diverge",
			"user_id", receiver.UserID, "instance_id", incoming.InstanceID, "error", err)
		persisted = false
	}

	offer.Status = models.TradeStatusAccepted
	s.metrics.TradesAccepted.Inc()

	return &ResolveTradeOutput{
		Offer:     offer,
		Card:      s.lookup(incoming.CardID),
		Persisted: persisted,
	}, nil
}

// lookup resolves a card ID against the catalog, tolerating definitions
// that have left the catalog since the instance was obtained
func (s *service) lookup(cardID string) *models.CardDefinition {
	card, err := s.catalog.Get(cardID)
	if err != nil {
		return &models.CardDefinition{ID: cardID, Name: cardID}
	}
	return card
}
