package system

import "time"

// Phase defines execution ordering within a single frame of the outer loop.
type Phase int

const (
	PhaseEvents   Phase = iota // 0: dispatch last frame's lifecycle events
	PhaseDirect                // 1: feed spawn/destroy requests into the world
	PhaseSimulate              // 2: the world tick itself
	PhaseObserve               // 3: stats and reporting
)

// System is the interface every outer-loop system implements. The world's
// own behaviour scheduling happens inside its Tick; these systems frame it.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
