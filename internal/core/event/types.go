package event

import "github.com/emberfall/server/internal/core/ecs"

// Lifecycle events mirrored off the world's trace stream. Diagnostic only;
// correctness never depends on a subscriber.

type EntityCreated struct {
	Entity ecs.EntityID
	Cause  ecs.Cause
}

type EntityDestroyed struct {
	Entity ecs.EntityID
	Cause  ecs.Cause
}

type BehaviourPanicked struct {
	Entity    ecs.EntityID
	Component string
}
