package ecs

import "errors"

var (
	// ErrDeadEntity is returned when a component is added to an entity whose
	// handle is stale or destroyed. Callers are expected to check IsAlive
	// first.
	ErrDeadEntity = errors.New("entity is not alive")

	// ErrDuplicateComponent is returned when an entity already owns a
	// component of the requested type.
	ErrDuplicateComponent = errors.New("component already present")

	// ErrMissingComponent is returned by Get when the component is absent.
	// TryGet is the non-erroring variant.
	ErrMissingComponent = errors.New("component not present")
)
