package component

import (
	"time"

	"github.com/emberfall/server/internal/core/ecs"
)

// CauseLifetime tags destroys requested by an expired Lifetime.
const CauseLifetime ecs.Cause = "lifetime"

// Lifetime destroys its entity once the remaining duration runs out. The
// destroy goes through the deferred queue, so expiry during the update phase
// takes effect at the end of the same tick.
type Lifetime struct {
	Remaining time.Duration

	expired bool
}

func (l *Lifetime) Update(w *ecs.World, e ecs.EntityID, dt time.Duration) {
	if l.expired {
		return
	}
	l.Remaining -= dt
	if l.Remaining > 0 {
		return
	}
	l.expired = true
	w.DestroyEntityWithCause(e, CauseLifetime)
}
