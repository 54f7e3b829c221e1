// Package catalog holds the immutable card catalog loaded at startup.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/codygriffin/cardboard/internal/models"
)

var (
	// ErrEmptyCatalog is returned when a random pick is requested from an
	// empty catalog
	ErrEmptyCatalog = errors.New("card catalog is empty")

	// ErrCardNotFound is returned when a card ID is not in the catalog
	ErrCardNotFound = errors.New("card not found in catalog")
)

// Config holds configuration for the catalog
type Config struct {
	// Cards is the ordered card list, typically from LoadFile
	Cards []*models.CardDefinition

	// Optional seed for testing
	Seed int64
}

// Catalog is a read-only card index with uniform random selection
type Catalog struct {
	cards []*models.CardDefinition
	byID  map[string]*models.CardDefinition

	mu     sync.Mutex
	random *rand.Rand
}

// New creates a catalog from a card list
func New(cfg *Config) (*Catalog, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	byID := make(map[string]*models.CardDefinition, len(cfg.Cards))
	for _, card := range cfg.Cards {
		if card.ID == "" {
			return nil, errors.New("card ID cannot be empty")
		}
		if _, ok := byID[card.ID]; ok {
			return nil, fmt.Errorf("duplicate card ID %q in catalog", card.ID)
		}
		byID[card.ID] = card
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Catalog{
		cards:  cfg.Cards,
		byID:   byID,
		random: rand.New(rand.NewSource(seed)),
	}, nil
}

// Get returns the definition for a card ID
func (c *Catalog) Get(cardID string) (*models.CardDefinition, error) {
	card, ok := c.byID[cardID]
	if !ok {
		return nil, ErrCardNotFound
	}
	return card, nil
}

// Random returns a uniformly random card definition
func (c *Catalog) Random() (*models.CardDefinition, error) {
	if len(c.cards) == 0 {
		return nil, ErrEmptyCatalog
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cards[c.random.Intn(len(c.cards))], nil
}

// All returns the catalog in load order
func (c *Catalog) All() []*models.CardDefinition {
	return c.cards
}

// Size returns the number of cards in the catalog
func (c *Catalog) Size() int {
	return len(c.cards)
}

// LoadFile reads a JSON card list from disk
func LoadFile(path string) ([]*models.CardDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var cards []*models.CardDefinition
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return cards, nil
}
