package ecs

import (
	"reflect"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// World is the top-level entity container: slot allocation, type-partitioned
// component storage, the behaviour registry, and the deferred mutation
// queues flushed by Tick.
//
// Threading contract: exactly one simulation goroutine owns Tick,
// CreateEntity, the builder, component add/get/remove, and iteration. Any
// goroutine may call EnqueueSpawn and DestroyEntityWithCause; those two are
// the only cross-thread entry points.
type World struct {
	log  *zap.Logger
	pool *entityPool

	stores    map[reflect.Type]anyStore
	storeList []anyStore // registration order, for deterministic bulk removal

	behaviours []behaviourEntry

	spawns   spawnQueue
	destroys destroyQueue
	stopped  atomic.Bool

	tracer   TraceFunc
	maxDelta time.Duration

	frame             uint64
	tickAliveStart    int
	createdThisTick   int
	destroyedThisTick int
}

// Option adjusts World construction.
type Option func(*World)

// WithMaxDelta sets the upper clamp for Tick's elapsed time. Defaults to one
// second.
func WithMaxDelta(d time.Duration) Option {
	return func(w *World) {
		if d > 0 {
			w.maxDelta = d
		}
	}
}

// NewWorld builds an empty world. The logger is held by the world itself so
// its lifetime matches the world's; nil means no logging.
func NewWorld(log *zap.Logger, opts ...Option) *World {
	if log == nil {
		log = zap.NewNop()
	}
	w := &World{
		log:      log,
		pool:     newEntityPool(log),
		stores:   make(map[reflect.Type]anyStore, 16),
		maxDelta: time.Second,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// CreateEntity allocates an entity immediately. Simulation goroutine only;
// producer goroutines use EnqueueSpawn instead.
func (w *World) CreateEntity() EntityID {
	return w.createEntityWithCause(CauseDirect)
}

func (w *World) createEntityWithCause(cause Cause) EntityID {
	e := w.pool.allocate()
	w.createdThisTick++
	w.log.Debug("entity created",
		zap.Stringer("entity", e),
		zap.String("cause", string(cause)))
	w.trace(TraceEvent{Kind: TraceCreate, Entity: e, Cause: cause})
	return e
}

// DestroyEntity queues the entity for destruction at the end of the current
// (or next) tick. Destroying an already-dead entity warns and does nothing.
func (w *World) DestroyEntity(e EntityID) {
	w.DestroyEntityWithCause(e, CauseUnknown)
}

// DestroyEntityWithCause is the cause-tagged variant of DestroyEntity. Safe
// to call from any goroutine.
func (w *World) DestroyEntityWithCause(e EntityID, cause Cause) {
	if !w.pool.isAlive(e) {
		w.log.Warn("destroy requested for dead entity",
			zap.Stringer("entity", e),
			zap.String("cause", string(cause)))
		return
	}
	w.destroys.push(e, cause)
}

// EnqueueSpawn queues a deferred entity creation. The callback runs on the
// scheduling goroutine during the next flush-spawn phase with the new
// entity. Safe to call from any goroutine. Rejected with a warning once
// StopAllSystems has been called.
func (w *World) EnqueueSpawn(cause Cause, fn SpawnFunc) {
	if w.stopped.Load() {
		w.log.Warn("spawn rejected: systems stopped",
			zap.String("cause", string(cause)))
		return
	}
	w.spawns.push(cause, fn)
}

// StopAllSystems begins a graceful drain toward shutdown: pending spawns are
// discarded and future EnqueueSpawn calls are rejected, while destroys and
// updates keep running. Idempotent.
func (w *World) StopAllSystems() {
	if !w.stopped.CompareAndSwap(false, true) {
		w.log.Debug("stop requested again; already stopped")
		return
	}
	if dropped := w.spawns.drain(); len(dropped) > 0 {
		w.log.Warn("discarding pending spawn requests on stop",
			zap.Int("count", len(dropped)))
	}
	w.log.Info("all systems stopped; spawn intake closed")
}

// Stopped reports whether StopAllSystems has been called.
func (w *World) Stopped() bool {
	return w.stopped.Load()
}

// IsAlive reports whether the handle still refers to a live entity.
func (w *World) IsAlive(e EntityID) bool {
	return w.pool.isAlive(e)
}

// AliveCount returns the number of currently live entities.
func (w *World) AliveCount() int {
	return w.pool.aliveTotal()
}

// EntityCount returns the total number of entity slots ever issued,
// including slots whose entities have since died.
func (w *World) EntityCount() int {
	return w.pool.slotTotal()
}

// Frame returns how many ticks have completed.
func (w *World) Frame() uint64 {
	return atomic.LoadUint64(&w.frame)
}

// Logger exposes the world's logger for collaborators that want to log in
// the same context.
func (w *World) Logger() *zap.Logger {
	return w.log
}
