package system

import (
	"time"

	"github.com/emberfall/server/internal/core/event"
	coresys "github.com/emberfall/server/internal/core/system"
)

// EventSystem rotates the double-buffered bus and delivers last tick's
// lifecycle events. Phase 0 (Events), so handlers run before any spawn
// direction or simulation this frame.
type EventSystem struct {
	bus *event.Bus
}

func NewEventSystem(bus *event.Bus) *EventSystem {
	return &EventSystem{bus: bus}
}

func (s *EventSystem) Phase() coresys.Phase { return coresys.PhaseEvents }

func (s *EventSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
