package ecs

import "sync"

// SpawnFunc completes a deferred spawn. It runs synchronously on the
// scheduling goroutine with the freshly created entity during the
// flush-spawn phase.
type SpawnFunc func(w *World, e EntityID)

type spawnRequest struct {
	cause Cause
	fn    SpawnFunc
}

// spawnQueue is a mutex-guarded FIFO of deferred creation requests. Safe to
// push from any goroutine; drained only by the scheduler.
type spawnQueue struct {
	mu   sync.Mutex
	reqs []spawnRequest
}

func (q *spawnQueue) push(cause Cause, fn SpawnFunc) {
	q.mu.Lock()
	q.reqs = append(q.reqs, spawnRequest{cause: cause, fn: fn})
	q.mu.Unlock()
}

func (q *spawnQueue) drain() []spawnRequest {
	q.mu.Lock()
	drained := q.reqs
	q.reqs = nil
	q.mu.Unlock()
	return drained
}

type destroyRequest struct {
	id    EntityID
	cause Cause
}

// destroyQueue is the mutex-guarded FIFO of deferred destruction requests.
type destroyQueue struct {
	mu   sync.Mutex
	reqs []destroyRequest
}

func (q *destroyQueue) push(id EntityID, cause Cause) {
	q.mu.Lock()
	q.reqs = append(q.reqs, destroyRequest{id: id, cause: cause})
	q.mu.Unlock()
}

func (q *destroyQueue) drain() []destroyRequest {
	q.mu.Lock()
	drained := q.reqs
	q.reqs = nil
	q.mu.Unlock()
	return drained
}

// dedupeDestroys collapses multiple requests for one entity into a single destroy in
// first-seen order, keeping the last cause recorded before the flush.
func dedupeDestroys(reqs []destroyRequest) []destroyRequest {
	if len(reqs) < 2 {
		return reqs
	}
	causes := make(map[EntityID]Cause, len(reqs))
	order := make([]EntityID, 0, len(reqs))
	for _, r := range reqs {
		if _, seen := causes[r.id]; !seen {
			order = append(order, r.id)
		}
		causes[r.id] = r.cause
	}
	out := make([]destroyRequest, 0, len(order))
	for _, id := range order {
		out = append(out, destroyRequest{id: id, cause: causes[id]})
	}
	return out
}
