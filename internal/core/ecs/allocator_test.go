package ecs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPoolFirstSlotIsOne(t *testing.T) {
	p := newEntityPool(zap.NewNop())
	e := p.allocate()
	assert.Equal(t, uint32(1), e.Index(), "index 0 stays reserved")
	assert.Equal(t, uint32(1), e.Generation(), "generations start at 1")
}

func TestPoolTwoStageFreeList(t *testing.T) {
	p := newEntityPool(zap.NewNop())
	a := p.allocate()

	require.True(t, p.free(a))

	b := p.allocate()
	assert.NotEqual(t, a.Index(), b.Index(), "freed slot is pending, not ready")

	p.promoteFreed()
	c := p.allocate()
	assert.Equal(t, a.Index(), c.Index())
	assert.Equal(t, a.Generation()+1, c.Generation())
}

func TestPoolFreeIsGenerationChecked(t *testing.T) {
	p := newEntityPool(zap.NewNop())
	a := p.allocate()

	stale := NewEntityID(a.Index(), a.Generation()+5)
	assert.False(t, p.free(stale), "stale handle must not free the slot")
	assert.True(t, p.isAlive(a))

	require.True(t, p.free(a))
	assert.False(t, p.free(a), "double free is rejected")
}

func TestPoolOutOfRangeHandles(t *testing.T) {
	p := newEntityPool(zap.NewNop())
	assert.False(t, p.isAlive(NewEntityID(99, 1)))
	assert.False(t, p.free(NewEntityID(99, 1)))
	assert.False(t, p.free(NewEntityID(0, 1)))
}

func TestPoolGenerationExhaustionRetiresSlot(t *testing.T) {
	p := newEntityPool(zap.NewNop())
	e := p.allocate()

	// Force the slot to the edge of the counter.
	p.mu.Lock()
	p.generations[e.Index()] = math.MaxUint32
	p.mu.Unlock()

	worn := NewEntityID(e.Index(), math.MaxUint32)
	require.True(t, p.free(worn))
	p.promoteFreed()

	next := p.allocate()
	assert.NotEqual(t, e.Index(), next.Index(), "an exhausted slot is retired, never recycled")
}

func TestPoolCounts(t *testing.T) {
	p := newEntityPool(zap.NewNop())
	a := p.allocate()
	b := p.allocate()

	assert.Equal(t, 2, p.aliveTotal())
	assert.Equal(t, 2, p.slotTotal())

	require.True(t, p.free(a))
	assert.Equal(t, 1, p.aliveTotal())
	assert.Equal(t, 2, p.slotTotal())
	assert.True(t, p.isAlive(b))
}
