package idgen

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_generator.go github.com/codygriffin/cardboard/internal/common/idgen Generator

const (
	// instanceIDPrefix is prepended to every issued instance ID
	instanceIDPrefix = "po"

	// instanceIDLength is the number of random characters after the prefix
	instanceIDLength = 4

	// instanceIDAlphabet is the character set instance IDs draw from
	instanceIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Generator produces identifiers for individual card instances
type Generator interface {
	// NewInstanceID returns a short random instance identifier
	NewInstanceID() string
}

// Config for the instance ID generator
type Config struct {
	// Optional seed for testing
	Seed int64
}

// Default implements Generator with a seeded random source. Issued IDs are
// not checked against IDs already in circulation, so collisions are possible
// within the prefix + 4 character space.
type Default struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new instance ID generator
func New(cfg *Config) *Default {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)

	return &Default{
		random: rand.New(source),
	}
}

// NewInstanceID returns a new instance identifier
func (g *Default) NewInstanceID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	buf := make([]byte, 0, len(instanceIDPrefix)+instanceIDLength)
	buf = append(buf, instanceIDPrefix...)
	for i := 0; i < instanceIDLength; i++ {
		buf = append(buf, instanceIDAlphabet[g.random.Intn(len(instanceIDAlphabet))])
	}

	return string(buf)
}
