package ecs

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// storeFor returns the typed store for T, creating and registering it on
// first use. Store creation is a simulation-goroutine concern.
func storeFor[T any](w *World) *store[T] {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if s, ok := w.stores[key]; ok {
		return s.(*store[T])
	}
	s := newStore[T]()
	w.stores[key] = s
	w.storeList = append(w.storeList, s)
	return s
}

// Add attaches a component of type T to the entity and returns a pointer to
// the stored instance. It fails when the entity is dead or already owns a T.
// If *T implements Updatable or Startable the component is registered with
// the behaviour registry as a side effect.
func Add[T any](w *World, e EntityID, v T) (*T, error) {
	return AddWithCause(w, e, CauseDirect, v)
}

// AddWithCause is Add with a diagnostic cause tag recorded on the behaviour
// registry entry and trace log.
func AddWithCause[T any](w *World, e EntityID, cause Cause, v T) (*T, error) {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if !w.pool.isAlive(e) {
		return nil, fmt.Errorf("add %s to %v: %w", key, e, ErrDeadEntity)
	}
	s := storeFor[T](w)
	if s.has(e) {
		return nil, fmt.Errorf("add %s to %v: %w", key, e, ErrDuplicateComponent)
	}
	c := &v
	s.set(e, c)

	_, updates := any(c).(Updatable)
	_, starts := any(c).(Startable)
	if updates || starts {
		w.registerBehaviour(e, key, cause)
		w.log.Debug("behaviour registered",
			zap.Stringer("entity", e),
			zap.Stringer("component", key),
			zap.String("cause", string(cause)))
	}
	return c, nil
}

// TryGet returns the entity's T, or nil when the entity is dead or the
// component absent. Never errors.
func TryGet[T any](w *World, e EntityID) *T {
	if !w.pool.isAlive(e) {
		return nil
	}
	c, ok := storeFor[T](w).get(e)
	if !ok {
		return nil
	}
	return c
}

// Get returns the entity's T or an error when it is absent or the entity is
// dead. Callers that expect absence use TryGet.
func Get[T any](w *World, e EntityID) (*T, error) {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if !w.pool.isAlive(e) {
		return nil, fmt.Errorf("get %s of %v: %w", key, e, ErrDeadEntity)
	}
	c, ok := storeFor[T](w).get(e)
	if !ok {
		return nil, fmt.Errorf("get %s of %v: %w", key, e, ErrMissingComponent)
	}
	return c, nil
}

// Has reports whether the entity is alive and owns a T.
func Has[T any](w *World, e EntityID) bool {
	return w.pool.isAlive(e) && storeFor[T](w).has(e)
}

// Remove detaches the entity's T and reports whether anything was removed.
// Removal is idempotent; removing an absent component is a logged no-op.
func Remove[T any](w *World, e EntityID) bool {
	key := reflect.TypeOf((*T)(nil)).Elem()
	s := storeFor[T](w)
	if !s.remove(e) {
		w.log.Debug("remove: nothing to do",
			zap.Stringer("entity", e),
			zap.Stringer("component", key))
		return false
	}
	w.unregisterBehaviour(e, key)
	return true
}

// ForEach visits every live entity owning a T. The id set is snapshotted
// before the first call and each id is re-checked for liveness and presence,
// so fn may create or destroy entities mid-iteration without corrupting the
// traversal.
func ForEach[T any](w *World, fn func(e EntityID, c *T)) {
	s := storeFor[T](w)
	for _, id := range s.snapshotIDs() {
		if !w.pool.isAlive(id) {
			continue
		}
		c, ok := s.get(id)
		if !ok {
			continue
		}
		fn(id, c)
	}
}

// ForEach2 visits every live entity owning both T1 and T2, snapshotting the
// smaller store's id set.
func ForEach2[T1, T2 any](w *World, fn func(e EntityID, c1 *T1, c2 *T2)) {
	s1 := storeFor[T1](w)
	s2 := storeFor[T2](w)
	if s1.count() <= s2.count() {
		for _, id := range s1.snapshotIDs() {
			if !w.pool.isAlive(id) {
				continue
			}
			c1, ok := s1.get(id)
			if !ok {
				continue
			}
			c2, ok := s2.get(id)
			if !ok {
				continue
			}
			fn(id, c1, c2)
		}
		return
	}
	for _, id := range s2.snapshotIDs() {
		if !w.pool.isAlive(id) {
			continue
		}
		c1, ok := s1.get(id)
		if !ok {
			continue
		}
		c2, ok := s2.get(id)
		if !ok {
			continue
		}
		fn(id, c1, c2)
	}
}
