package ecs

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Tick runs one frame of the scheduler. Phases, strictly ordered:
//
//  1. flush deferred spawns (FIFO, callbacks on this goroutine)
//  2. start: one-time init for behaviours not yet started
//  3. update: per-frame hook for every started behaviour
//  4. flush deferred destroys (deduplicated, last cause wins)
//  5. registry cleanup (drop entries for dead entities)
//  6. bookkeeping: invariant check, free list promotion, frame counter
//
// Must be called exactly once per simulated frame, from the single
// simulation goroutine.
func (w *World) Tick(dt time.Duration) {
	dt = w.clampDelta(dt)

	w.tickAliveStart = w.pool.aliveTotal()
	w.createdThisTick = 0
	w.destroyedThisTick = 0

	w.flushSpawns()
	w.runStartPhase()
	w.runUpdatePhase(dt)
	w.flushDestroys()
	w.compactBehaviours()
	w.finishTick()
}

func (w *World) clampDelta(dt time.Duration) time.Duration {
	if dt < 0 {
		w.log.Warn("negative tick delta clamped to zero", zap.Duration("dt", dt))
		return 0
	}
	if dt > w.maxDelta {
		w.log.Warn("implausible tick delta clamped",
			zap.Duration("dt", dt),
			zap.Duration("max", w.maxDelta))
		return w.maxDelta
	}
	return dt
}

// flushSpawns drains the spawn queue in FIFO order. After StopAllSystems the
// queue is drained and discarded instead of applied; requests racing the
// stop are dropped here.
func (w *World) flushSpawns() {
	reqs := w.spawns.drain()
	if len(reqs) == 0 {
		return
	}
	if w.stopped.Load() {
		w.log.Warn("discarding spawn requests queued after stop",
			zap.Int("count", len(reqs)))
		return
	}
	for _, req := range reqs {
		e := w.createEntityWithCause(req.cause)
		if req.fn != nil {
			req.fn(w, e)
		}
	}
}

// runStartPhase invokes the one-time init hook for entries not yet started.
// The loop re-reads the slice length so behaviours registered by a Start
// hook are themselves started within the same phase.
func (w *World) runStartPhase() {
	for i := 0; i < len(w.behaviours); i++ {
		if w.behaviours[i].removed || w.behaviours[i].started {
			continue
		}
		e := w.behaviours[i].entity
		if !w.pool.isAlive(e) {
			continue
		}
		comp, ok := w.resolveBehaviour(&w.behaviours[i])
		if !ok {
			continue
		}
		key := w.behaviours[i].typeKey
		cause := w.behaviours[i].cause
		w.behaviours[i].started = true
		if s, isStartable := comp.(Startable); isStartable {
			w.safeStart(s, e, key.String())
			w.trace(TraceEvent{Kind: TraceStart, Entity: e, Cause: cause})
		}
	}
}

// runUpdatePhase drives every started behaviour once. Liveness and store
// presence are re-validated per entry rather than assuming a stable index,
// so entries may die or be removed mid-phase. The length is captured up
// front: behaviours added during this phase first start next tick.
func (w *World) runUpdatePhase(dt time.Duration) {
	n := len(w.behaviours)
	for i := 0; i < n; i++ {
		if w.behaviours[i].removed || !w.behaviours[i].started {
			continue
		}
		e := w.behaviours[i].entity
		if !w.pool.isAlive(e) {
			continue
		}
		comp, ok := w.resolveBehaviour(&w.behaviours[i])
		if !ok {
			continue
		}
		if u, isUpdatable := comp.(Updatable); isUpdatable {
			w.safeUpdate(u, e, dt, w.behaviours[i].typeKey.String())
		}
	}
}

// safeStart runs a Start hook, containing panics to the single entry.
func (w *World) safeStart(s Startable, e EntityID, typeName string) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("behaviour start panicked",
				zap.Stringer("entity", e),
				zap.String("component", typeName),
				zap.Any("panic", r))
			w.trace(TraceEvent{Kind: TracePanic, Entity: e, Cause: Cause(typeName)})
		}
	}()
	s.Start(w, e)
}

// safeUpdate runs an Update hook, containing panics to the single entry. A
// faulting component simply misses this frame.
func (w *World) safeUpdate(u Updatable, e EntityID, dt time.Duration, typeName string) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("behaviour update panicked",
				zap.Stringer("entity", e),
				zap.String("component", typeName),
				zap.Any("panic", r))
			w.trace(TraceEvent{Kind: TracePanic, Entity: e, Cause: Cause(typeName)})
		}
	}()
	u.Update(w, e, dt)
}

// flushDestroys drains the destroy queue, collapses duplicates (last cause
// wins), and applies each destroy: component stores cleared, behaviour
// entries dropped, generation bumped, slot queued for reuse next tick.
func (w *World) flushDestroys() {
	reqs := dedupeDestroys(w.destroys.drain())
	for _, req := range reqs {
		if !w.pool.isAlive(req.id) {
			// Stale by flush time; the enqueue-side warning already fired
			// for dead handles, so stay quiet here.
			w.log.Debug("skipping destroy of stale handle",
				zap.Stringer("entity", req.id))
			continue
		}
		w.destroyNow(req.id, req.cause)
	}
}

func (w *World) destroyNow(e EntityID, cause Cause) {
	for _, s := range w.storeList {
		s.remove(e)
	}
	w.unregisterEntityBehaviours(e)
	w.pool.free(e)
	w.destroyedThisTick++
	w.log.Debug("entity destroyed",
		zap.Stringer("entity", e),
		zap.String("cause", string(cause)))
	w.trace(TraceEvent{Kind: TraceDestroy, Entity: e, Cause: cause})
}

// finishTick verifies the per-tick accounting invariant, promotes freed
// slots for reuse next frame, and advances the frame counter. An invariant
// mismatch is a diagnostic signal, never fatal.
func (w *World) finishTick() {
	aliveEnd := w.pool.aliveTotal()
	expected := w.tickAliveStart + w.createdThisTick - w.destroyedThisTick
	if aliveEnd != expected {
		w.log.Warn("entity accounting mismatch",
			zap.Int("alive_start", w.tickAliveStart),
			zap.Int("created", w.createdThisTick),
			zap.Int("destroyed", w.destroyedThisTick),
			zap.Int("alive_end", aliveEnd),
			zap.Int("expected", expected))
	}
	w.pool.promoteFreed()
	atomic.AddUint64(&w.frame, 1)
}
