package collection

import (
	"fmt"
	"time"

	"github.com/codygriffin/cardboard/internal/cooldown"
)

// CollectionError is a custom error type for collection-related errors
type CollectionError string

// Error implements the error interface
func (e CollectionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrIndexOutOfRange CollectionError = "card index out of range"
	ErrNoActivePick    CollectionError = "no active pick session"
	ErrNilConfig       CollectionError = "config cannot be nil"
	ErrNilSessions     CollectionError = "session cache cannot be nil"
	ErrNilUserRepo     CollectionError = "user repository cannot be nil"
	ErrNilInventory    CollectionError = "inventory repository cannot be nil"
	ErrNilCatalog      CollectionError = "catalog cannot be nil"
	ErrNilIDGen        CollectionError = "instance ID generator cannot be nil"
	ErrNilClock        CollectionError = "clock cannot be nil"
	ErrNilLogger       CollectionError = "logger cannot be nil"
	ErrNilMetrics      CollectionError = "metrics cannot be nil"
)

// CooldownError reports that a time-gated action is not yet eligible. It
// carries the remaining wait so callers can render it.
type CooldownError struct {
	// Action is the gated action ("draw", "pack" or "pick")
	Action string

	// Remaining is the wait left, rounded up to whole seconds
	Remaining time.Duration
}

// Error implements the error interface
func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s is on cooldown for another %s", e.Action, cooldown.FormatRemaining(e.Remaining))
}
