package session

import (
	"context"
	"errors"
	"sync"

	"github.com/codygriffin/cardboard/internal/models"
	"github.com/codygriffin/cardboard/internal/repositories/inventory"
	"github.com/codygriffin/cardboard/internal/repositories/user"
	"go.uber.org/zap"
)

// Config holds configuration for the session cache
type Config struct {
	// User record repository
	UserRepo user.Repository

	// Inventory row repository
	InventoryRepo inventory.Repository

	// Logger for degraded loads
	Logger *zap.SugaredLogger
}

// Cache maps user IDs to their single in-memory session. A session is
// lazily hydrated from durable storage on first access and served from
// memory for the rest of the process lifetime. The cache is constructed
// once in main and threaded through the services that need it.
type Cache struct {
	userRepo      user.Repository
	inventoryRepo inventory.Repository
	logger        *zap.SugaredLogger

	mu       sync.Mutex
	sessions map[string]*Session
}

// New creates a session cache
func New(cfg *Config) (*Cache, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.UserRepo == nil {
		return nil, errors.New("user repository cannot be nil")
	}

	if cfg.InventoryRepo == nil {
		return nil, errors.New("inventory repository cannot be nil")
	}

	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Cache{
		userRepo:      cfg.UserRepo,
		inventoryRepo: cfg.InventoryRepo,
		logger:        cfg.Logger,
		sessions:      make(map[string]*Session),
	}, nil
}

// GetOrLoad returns the session for a user, hydrating it from durable
// storage on first access. A missing user record is created durably with
// zero cooldowns. Durable read errors degrade to an empty default session
// rather than failing the command: the running process keeps serving, and
// the durable store catches up on later writes.
//
// The load happens under the cache lock, so exactly one session is ever
// created per user.
func (c *Cache) GetOrLoad(ctx context.Context, userID string) (*Session, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if sess, ok := c.sessions[userID]; ok {
		return sess, nil
	}

	sess := c.load(ctx, userID)
	c.sessions[userID] = sess
	return sess, nil
}

// load hydrates a session from the durable store
func (c *Cache) load(ctx context.Context, userID string) *Session {
	sess := &Session{
		UserID:    userID,
		Inventory: []*models.CardInstance{},
	}

	record, err := c.userRepo.GetUser(ctx, &user.GetUserInput{UserID: userID})
	switch {
	case err == nil:
		sess.LastDraw = record.LastDraw
		sess.LastPack = record.LastPack
		sess.LastPick = record.LastPick
	case errors.Is(err, user.ErrUserNotFound):
		// First contact: create the default durable record
		if saveErr := c.userRepo.SaveUser(ctx, &user.SaveUserInput{User: sess.User()}); saveErr != nil {
			c.logger.Warnw("failed to create default user record", "user_id", userID, "error", saveErr)
		}
	default:
		c.logger.Errorw("failed to load user record, serving default session", "user_id", userID, "error", err)
		return sess
	}

	cards, err := c.inventoryRepo.GetCards(ctx, &inventory.GetCardsInput{UserID: userID})
	if err != nil {
		c.logger.Errorw("failed to load inventory, serving empty inventory", "user_id", userID, "error", err)
		return sess
	}

	sess.Inventory = cards.Instances
	return sess
}

// Evict drops a user's session so the next access reloads from durable
// storage. Used by tests to simulate a cache miss.
func (c *Cache) Evict(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, userID)
}
