package collection

import (
	"context"
	"time"

	"github.com/codygriffin/cardboard/internal/catalog"
	"github.com/codygriffin/cardboard/internal/common/clock"
	"github.com/codygriffin/cardboard/internal/common/idgen"
	"github.com/codygriffin/cardboard/internal/common/metrics"
	"github.com/codygriffin/cardboard/internal/cooldown"
	"github.com/codygriffin/cardboard/internal/models"
	"github.com/codygriffin/cardboard/internal/repositories/inventory"
	"github.com/codygriffin/cardboard/internal/repositories/user"
	"github.com/codygriffin/cardboard/internal/session"
	"go.uber.org/zap"
)

// service implements the Service interface
type service struct {
	sessions      *session.Cache
	userRepo      user.Repository
	inventoryRepo inventory.Repository
	catalog       *catalog.Catalog
	idGen         idgen.Generator
	clock         clock.Clock
	logger        *zap.SugaredLogger
	metrics       *metrics.Metrics

	drawCooldown time.Duration
	packCooldown time.Duration
	pickCooldown time.Duration
}

// New creates a new collection service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Sessions == nil {
		return nil, ErrNilSessions
	}
	if cfg.UserRepo == nil {
		return nil, ErrNilUserRepo
	}
	if cfg.InventoryRepo == nil {
		return nil, ErrNilInventory
	}
	if cfg.Catalog == nil {
		return nil, ErrNilCatalog
	}
	if cfg.IDGen == nil {
		return nil, ErrNilIDGen
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
		userRepo:      cfg.UserRepo,
		inventoryRepo: cfg.InventoryRepo,
		catalog:       cfg.Catalog,
		idGen:         cfg.IDGen,
		clock:         cfg.Clock,
		logger:        cfg.Logger,
		metrics:       cfg.Metrics,
		drawCooldown:  cfg.DrawCooldown,
		packCooldown:  cfg.PackCooldown,
		pickCooldown:  cfg.PickCooldown,
	}, nil
}

// Draw gives the user one random card, gated by the draw cooldown
func (s *service) Draw(ctx context.Context, input *DrawInput) (*DrawOutput, error) {
	sess, err := s.sessions.GetOrLoad(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	now := s.clock.Now()
	if ok, remaining := cooldown.Check(now, sess.LastDraw, s.drawCooldown); !ok {
		return nil, &CooldownError{Action: "draw", Remaining: remaining}
	}

	card, err := s.catalog.Random()
	if err != nil {
		return nil, err
	}

	instance, inserted := s.addCard(ctx, sess, card.ID, now)

	sess.LastDraw = now
	persisted := s.persistCooldowns(ctx, sess) && inserted

	s.metrics.Draws.Inc()

	return &DrawOutput{
		Card:      card,
		Instance:  instance,
		Persisted: persisted,
	}, nil
}

// OpenPack gives the user five random cards, gated by the pack cooldown
func (s *service) OpenPack(ctx context.Context, input *OpenPackInput) (*OpenPackOutput, error) {
	sess, err := s.sessions.GetOrLoad(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	now := s.clock.Now()
	if ok, remaining := cooldown.Check(now, sess.LastPack, s.packCooldown); !ok {
		return nil, &CooldownError{Action: "pack", Remaining: remaining}
	}

	persisted := true
	cards := make([]*OwnedCard, 0, PackSize)
	for i := 0; i < PackSize; i++ {
		card, err := s.catalog.Random()
		if err != nil {
			return nil, err
		}

		instance, inserted := s.addCard(ctx, sess, card.ID, now)
		persisted = persisted && inserted
		cards = append(cards, &OwnedCard{Card: card, Instance: instance})
	}

	sess.LastPack = now
	persisted = s.persistCooldowns(ctx, sess) && persisted

	s.metrics.PacksOpened.Inc()

	return &OpenPackOutput{
		Cards:     cards,
		Persisted: persisted,
	}, nil
}

// StartPick offers the user three random cards, gated by the pick cooldown.
// An uncommitted prior pick is overwritten.
func (s *service) StartPick(ctx context.Context, input *StartPickInput) (*StartPickOutput, error) {
	sess, err := s.sessions.GetOrLoad(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	now := s.clock.Now()
	if ok, remaining := cooldown.Check(now, sess.LastPick, s.pickCooldown); !ok {
		return nil, &CooldownError{Action: "pick", Remaining: remaining}
	}

	// The three choices are drawn independently, so slots may repeat the
	// same card.
	choices := make([]*models.CardDefinition, 0, PickSize)
	for i := 0; i < PickSize; i++ {
		card, err := s.catalog.Random()
		if err != nil {
			return nil, err
		}
		choices = append(choices, card)
	}

	sess.PickChoices = choices
	sess.LastPick = now
	persisted := s.persistCooldowns(ctx, sess)

	s.metrics.PicksStarted.Inc()

	return &StartPickOutput{
		Choices:   choices,
		Persisted: persisted,
	}, nil
}

// ResolvePick commits one slot of an active pick into the inventory
func (s *service) ResolvePick(ctx context.Context, input *ResolvePickInput) (*ResolvePickOutput, error) {
	sess, err := s.sessions.GetOrLoad(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	if len(sess.PickChoices) == 0 {
		return nil, ErrNoActivePick
	}

	if input.Slot < 0 || input.Slot >= len(sess.PickChoices) {
		return nil, ErrIndexOutOfRange
	}

	card := sess.PickChoices[input.Slot]
	instance, inserted := s.addCard(ctx, sess, card.ID, s.clock.Now())
	sess.PickChoices = nil

	s.metrics.PicksResolved.Inc()

	return &ResolvePickOutput{
		Card:      card,
		Instance:  instance,
		Persisted: inserted,
	}, nil
}

// Trash removes a card from the inventory by its listed position
func (s *service) Trash(ctx context.Context, input *TrashInput) (*TrashOutput, error) {
	sess, err := s.sessions.GetOrLoad(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	if input.Index < 0 || input.Index >= len(sess.Inventory) {
		return nil, ErrIndexOutOfRange
	}

	instance := sess.Inventory[input.Index]
	sess.Inventory = append(sess.Inventory[:input.Index], sess.Inventory[input.Index+1:]...)

	// The instance is in hand, so the durable row is matched by instance
	// ID rather than by (card, obtained) which is ambiguous for packs.
	persisted := true
	if err := s.inventoryRepo.DeleteCard(ctx, &inventory.DeleteCardInput{
		UserID:     sess.UserID,
		InstanceID: instance.InstanceID,
	}); err != nil {
		s.logger.Errorw("failed to delete inventory row, cache and store diverge",
			"user_id", sess.UserID, "instance_id", instance.InstanceID, "error", err)
		persisted = false
	}

	s.metrics.CardsTrashed.Inc()

	return &TrashOutput{
		Card:      s.lookup(instance.CardID),
		Instance:  instance,
		Persisted: persisted,
	}, nil
}

// GetCollection lists the user's inventory in acquisition order
func (s *service) GetCollection(ctx context.Context, input *GetCollectionInput) (*GetCollectionOutput, error) {
	sess, err := s.sessions.GetOrLoad(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	cards := make([]*OwnedCard, 0, len(sess.Inventory))
	for _, instance := range sess.Inventory {
		cards = append(cards, &OwnedCard{
			Card:     s.lookup(instance.CardID),
			Instance: instance,
		})
	}

	return &GetCollectionOutput{Cards: cards}, nil
}

// GetCooldowns reports the remaining wait for each gated action
func (s *service) GetCooldowns(ctx context.Context, input *GetCooldownsInput) (*GetCooldownsOutput, error) {
	sess, err := s.sessions.GetOrLoad(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	now := s.clock.Now()
	_, draw := cooldown.Check(now, sess.LastDraw, s.drawCooldown)
	_, pack := cooldown.Check(now, sess.LastPack, s.packCooldown)
	_, pick := cooldown.Check(now, sess.LastPick, s.pickCooldown)

	return &GetCooldownsOutput{
		DrawRemaining: draw,
		PackRemaining: pack,
		PickRemaining: pick,
	}, nil
}

// addCard appends a new instance to the session's inventory and inserts the
// matching durable row. The in-memory append happens unconditionally: the
// cache is the source of truth for the running process, and a failed insert
// only means the durable store under-represents the inventory until it is
// written again. Returns the instance and whether the insert succeeded.
func (s *service) addCard(ctx context.Context, sess *session.Session, cardID string, obtainedAt time.Time) (*models.CardInstance, bool) {
	instance := &models.CardInstance{
		CardID:     cardID,
		ObtainedAt: obtainedAt,
		InstanceID: s.idGen.NewInstanceID(),
	}

	sess.Inventory = append(sess.Inventory, instance)

	if err := s.inventoryRepo.AddCard(ctx, &inventory.AddCardInput{
		UserID:   sess.UserID,
		Instance: instance,
	}); err != nil {
		s.logger.Errorw("failed to insert inventory row, cache and store diverge",
			"user_id", sess.UserID, "instance_id", instance.InstanceID, "error", err)
		return instance, false
	}

	return instance, true
}

// persistCooldowns upserts the session's cooldown timestamps
func (s *service) persistCooldowns(ctx context.Context, sess *session.Session) bool {
	if err := s.userRepo.SaveUser(ctx, &user.SaveUserInput{User: sess.User()}); err != nil {
		s.logger.Errorw("failed to persist cooldowns", "user_id", sess.UserID, "error", err)
		return false
	}
	return true
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
