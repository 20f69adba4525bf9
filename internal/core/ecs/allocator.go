package ecs

import (
	"math"
	"sync"

	"go.uber.org/zap"
)

// entityPool manages entity slot allocation with generational indices and a
// two-stage free list. Indices freed during frame N sit in the pending list
// until the scheduler promotes them at the end of the tick, so a slot can
// never be reissued in the same frame it was freed.
type entityPool struct {
	mu          sync.Mutex
	generations []uint32
	alive       []bool
	aliveCount  int
	pendingFree []uint32
	readyFree   []uint32
	nextIndex   uint32
	log         *zap.Logger
}

func newEntityPool(log *zap.Logger) *entityPool {
	p := &entityPool{
		generations: make([]uint32, 1, 1024),
		alive:       make([]bool, 1, 1024),
		pendingFree: make([]uint32, 0, 256),
		readyFree:   make([]uint32, 0, 256),
		nextIndex:   1, // index 0 reserved so the zero EntityID is never live
		log:         log,
	}
	return p
}

// allocate issues an entity, recycling a slot from the ready free list when
// one is available. Generations start at 1 on fresh slots.
func (p *entityPool) allocate() EntityID {
	p.mu.Lock()
	defer p.mu.Unlock()

	var idx uint32
	if n := len(p.readyFree); n > 0 {
		idx = p.readyFree[n-1]
		p.readyFree = p.readyFree[:n-1]
	} else {
		idx = p.nextIndex
		p.nextIndex++
		p.generations = append(p.generations, 1)
		p.alive = append(p.alive, false)
	}
	p.alive[idx] = true
	p.aliveCount++
	return NewEntityID(idx, p.generations[idx])
}

// free retires the handle: generation bump, alive eviction, pending free
// list. Scheduler-only; callers go through the deferred destroy queue.
// Returns false when the handle is stale or already dead.
func (p *entityPool) free(id EntityID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx := id.Index()
	if idx == 0 || idx >= p.nextIndex {
		return false
	}
	if !p.alive[idx] || p.generations[idx] != id.Generation() {
		return false
	}

	p.alive[idx] = false
	p.aliveCount--
	if p.generations[idx] == math.MaxUint32 {
		// Generation would wrap and alias ancient handles. Retire the slot
		// instead of recycling it.
		p.log.Warn("entity slot retired: generation counter exhausted",
			zap.Uint32("index", idx))
		return true
	}
	p.generations[idx]++
	p.pendingFree = append(p.pendingFree, idx)
	return true
}

// promoteFreed moves pending indices into the ready list. Called once per
// tick, after the destroy flush, never mid-frame.
func (p *entityPool) promoteFreed() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.pendingFree) == 0 {
		return
	}
	p.readyFree = append(p.readyFree, p.pendingFree...)
	p.pendingFree = p.pendingFree[:0]
}

func (p *entityPool) isAlive(id EntityID) bool {
	if id.IsZero() {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	idx := id.Index()
	if idx >= p.nextIndex {
		return false
	}
	return p.alive[idx] && p.generations[idx] == id.Generation()
}

func (p *entityPool) aliveTotal() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.aliveCount
}

// slotTotal reports how many index slots have ever been issued.
func (p *entityPool) slotTotal() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return int(p.nextIndex) - 1
}
