package ecs

// Builder composes entity creation with component adds in a fluent chain.
// The entity exists as soon as Create returns; the builder only forwards to
// the allocator and the component stores.
type Builder struct {
	w     *World
	e     EntityID
	cause Cause
	err   error
}

// Create allocates an entity and returns a builder for it. Simulation
// goroutine only.
func (w *World) Create() *Builder {
	return w.CreateWithCause(CauseBuilder)
}

// CreateWithCause is Create with a diagnostic cause tag applied to the
// entity and every component added through the builder.
func (w *World) CreateWithCause(cause Cause) *Builder {
	return &Builder{
		w:     w,
		e:     w.createEntityWithCause(cause),
		cause: cause,
	}
}

// With attaches a component to the entity under construction. The first add
// error sticks and is reported by Build; later adds are skipped.
func With[T any](b *Builder, v T) *Builder {
	if b.err != nil {
		return b
	}
	if _, err := AddWithCause(b.w, b.e, b.cause, v); err != nil {
		b.err = err
	}
	return b
}

// Entity returns the entity under construction.
func (b *Builder) Entity() EntityID {
	return b.e
}

// Build finishes the chain, returning the entity and the first add error if
// any. The entity exists either way; callers that must not leak a half-built
// entity destroy it on error.
func (b *Builder) Build() (EntityID, error) {
	return b.e, b.err
}
