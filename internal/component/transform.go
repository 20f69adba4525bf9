package component

import (
	"time"

	"github.com/emberfall/server/internal/core/ecs"
)

// Transform is plain per-entity position state.
type Transform struct {
	X, Y float64
}

// Velocity moves its entity's Transform every tick. It is a behaviour: the
// world schedules Update once per frame while the entity lives.
type Velocity struct {
	DX, DY float64 // units per second
}

func (v *Velocity) Update(w *ecs.World, e ecs.EntityID, dt time.Duration) {
	t := ecs.TryGet[Transform](w, e)
	if t == nil {
		return
	}
	secs := dt.Seconds()
	t.X += v.DX * secs
	t.Y += v.DY * secs
}
