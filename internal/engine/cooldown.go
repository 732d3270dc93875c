package engine

import (
	"time"

	"github.com/mirrorlabs/nft-mirror/internal/domain"
	"github.com/mirrorlabs/nft-mirror/internal/store/schema"
)

// DefaultCooldown is the window after a successful synchronous refresh during
// which further refresh requests are rejected. Background populations are not
// subject to it.
const DefaultCooldown = 5 * time.Minute

// cooldownFor returns the active cooldown for a collection, or nil when a
// refresh may proceed. An unknown collection has no cooldown.
func (e *syncEngine) cooldownFor(collection *schema.Collection) *domain.CooldownError {
	if collection == nil || collection.RefreshCooldownUntil == nil {
		return nil
	}

	now := e.clock.Now()
	until := *collection.RefreshCooldownUntil
	if !until.After(now) {
		return nil
	}

	return &domain.CooldownError{
		Until:     until,
		Remaining: until.Sub(now),
	}
}
