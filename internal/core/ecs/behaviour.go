package ecs

import (
	"reflect"
	"time"
)

// Updatable is the per-frame hook of a behaviour component. The scheduler
// calls it once per tick while the owning entity is alive.
type Updatable interface {
	Update(w *World, e EntityID, dt time.Duration)
}

// Startable is the optional one-time initialization hook, invoked on the
// first tick after the component is added, before its first Update.
type Startable interface {
	Start(w *World, e EntityID)
}

// behaviourEntry links an entity to a behaviour component by store key. The
// registry never holds the component pointer; the scheduler resolves it
// through the store each phase, so store removal cannot leave a dangling
// reference.
type behaviourEntry struct {
	entity  EntityID
	typeKey reflect.Type
	cause   Cause
	started bool
	removed bool
}

// registerBehaviour appends a registry entry. Called from Add when the
// component implements Updatable or Startable.
func (w *World) registerBehaviour(e EntityID, key reflect.Type, cause Cause) {
	w.behaviours = append(w.behaviours, behaviourEntry{
		entity:  e,
		typeKey: key,
		cause:   cause,
	})
}

// unregisterBehaviour tombstones entries for (entity, type). Tombstones keep
// indices stable while a phase is iterating; the cleanup phase compacts.
func (w *World) unregisterBehaviour(e EntityID, key reflect.Type) {
	for i := range w.behaviours {
		ent := &w.behaviours[i]
		if !ent.removed && ent.entity == e && ent.typeKey == key {
			ent.removed = true
		}
	}
}

// unregisterEntityBehaviours tombstones every entry owned by the entity.
func (w *World) unregisterEntityBehaviours(e EntityID) {
	for i := range w.behaviours {
		if !w.behaviours[i].removed && w.behaviours[i].entity == e {
			w.behaviours[i].removed = true
		}
	}
}

// resolveBehaviour looks the component up freshly through its store.
func (w *World) resolveBehaviour(ent *behaviourEntry) (any, bool) {
	s, ok := w.stores[ent.typeKey]
	if !ok {
		return nil, false
	}
	return s.resolve(ent.entity)
}

// compactBehaviours drops tombstoned entries and entries whose entity died
// outside the destroy flush. Runs in the cleanup phase only, when no
// behaviour iteration is in flight.
func (w *World) compactBehaviours() {
	kept := w.behaviours[:0]
	for _, ent := range w.behaviours {
		if ent.removed || !w.pool.isAlive(ent.entity) {
			continue
		}
		kept = append(kept, ent)
	}
	w.behaviours = kept
}
