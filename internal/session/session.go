// Package session holds the in-memory per-user economic state and the cache
// that hydrates it from durable storage.
package session

import (
	"sync"
	"time"

	"github.com/codygriffin/cardboard/internal/models"
)

// Session is the single mutable in-memory state for one user. The cache
// hands out the same *Session for a user for the life of the process, so a
// mutation made by one handler is immediately visible to the next without a
// store round trip.
//
// Every operation that checks state and then mutates it must hold the
// session lock for the whole check-then-act span. That is what keeps two
// near-simultaneous commands from the same user from both passing a
// cooldown check against stale state.
type Session struct {
	mu sync.Mutex

	// UserID is the Discord user ID
	UserID string

	// LastDraw is when the user last drew a single card
	LastDraw time.Time

	// LastPack is when the user last opened a pack
	LastPack time.Time

	// LastPick is when the user last started a pick
	LastPick time.Time

	// Inventory is the user's owned instances in acquisition order.
	// Order is significant: removal is addressed by position.
	Inventory []*models.CardInstance

	// PickChoices holds an uncommitted three-card pick, if any
	PickChoices []*models.CardDefinition
}

// Lock serializes operations on this user's state
func (s *Session) Lock() {
	s.mu.Lock()
}

// Unlock releases the session
func (s *Session) Unlock() {
	s.mu.Unlock()
}

// User returns the durable-record view of the session's cooldowns
func (s *Session) User() *models.User {
	return &models.User{
		ID:       s.UserID,
		LastDraw: s.LastDraw,
		LastPack: s.LastPack,
		LastPick: s.LastPick,
	}
}

// FindInstance returns the position of an instance ID in the inventory, or
// -1 when the instance is not present
func (s *Session) FindInstance(instanceID string) int {
	for i, instance := range s.Inventory {
		if instance.InstanceID == instanceID {
			return i
		}
	}
	return -1
}
