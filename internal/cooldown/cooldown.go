// Package cooldown implements the time gate for rate-limited actions.
package cooldown

import (
	"fmt"
	"time"
)

// Check reports whether an action whose previous occurrence was at last is
// eligible again at now, given the configured cooldown. When the action is
// still gated, the remaining wait is returned rounded up to whole seconds
// for display.
func Check(now, last time.Time, cooldown time.Duration) (bool, time.Duration) {
	elapsed := now.Sub(last)
	if elapsed >= cooldown {
		return true, 0
	}

	remaining := cooldown - elapsed
	rounded := remaining.Truncate(time.Second)
	if rounded < remaining {
		rounded += time.Second
	}

	return false, rounded
}

// FormatRemaining renders a remaining wait as "Xm Ys", or "Ys" when under a
// minute.
func FormatRemaining(remaining time.Duration) string {
	seconds := int(remaining / time.Second)
	minutes := seconds / 60
	seconds = seconds % 60

	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}
