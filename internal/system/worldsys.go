package system

import (
	"time"

	"github.com/emberfall/server/internal/core/ecs"
	"github.com/emberfall/server/internal/core/event"
	coresys "github.com/emberfall/server/internal/core/system"
)

// WorldSystem hosts the world's tick inside the outer runner. Phase 2
// (Simulate). It also mirrors the world's trace stream onto the event bus so
// observers see lifecycle transitions one tick later.
type WorldSystem struct {
	world *ecs.World
}

func NewWorldSystem(w *ecs.World, bus *event.Bus) *WorldSystem {
	if bus != nil {
		w.SetTracer(func(ev ecs.TraceEvent) {
			switch ev.Kind {
			case ecs.TraceCreate:
				event.Emit(bus, event.EntityCreated{Entity: ev.Entity, Cause: ev.Cause})
			case ecs.TraceDestroy:
				event.Emit(bus, event.EntityDestroyed{Entity: ev.Entity, Cause: ev.Cause})
			case ecs.TracePanic:
				event.Emit(bus, event.BehaviourPanicked{Entity: ev.Entity, Component: string(ev.Cause)})
			}
		})
	}
	return &WorldSystem{world: w}
}

func (s *WorldSystem) Phase() coresys.Phase { return coresys.PhaseSimulate }

func (s *WorldSystem) Update(dt time.Duration) {
	s.world.Tick(dt)
}
