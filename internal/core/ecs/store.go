package ecs

// anyStore is the type-erased face of a component store. The World holds one
// per registered component type and uses it for bulk removal on destroy and
// for resolving behaviour pointers without knowing the concrete type.
type anyStore interface {
	remove(id EntityID) bool
	has(id EntityID) bool
	resolve(id EntityID) (any, bool)
	count() int
	snapshotIDs() []EntityID
}

// store is a typed map store for one component kind. Keys are full entity
// handles, so a lookup with a stale generation naturally misses. No reflect
// on the access path; pure generics.
type store[T any] struct {
	data map[EntityID]*T
}

func newStore[T any]() *store[T] {
	return &store[T]{data: make(map[EntityID]*T, 64)}
}

func (s *store[T]) set(id EntityID, c *T) {
	s.data[id] = c
}

func (s *store[T]) get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *store[T]) remove(id EntityID) bool {
	if _, ok := s.data[id]; !ok {
		return false
	}
	delete(s.data, id)
	return true
}

func (s *store[T]) has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *store[T]) resolve(id EntityID) (any, bool) {
	c, ok := s.data[id]
	if !ok {
		return nil, false
	}
	return c, true
}

func (s *store[T]) count() int {
	return len(s.data)
}

// snapshotIDs copies the current key set. Iteration works off this copy so
// callbacks may add or destroy entities without corrupting the traversal.
func (s *store[T]) snapshotIDs() []EntityID {
	ids := make([]EntityID, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids
}
