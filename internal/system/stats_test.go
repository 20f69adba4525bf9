package system_test

import (
	"testing"
	"time"

	"github.com/emberfall/server/internal/core/ecs"
	"github.com/emberfall/server/internal/core/event"
	"github.com/emberfall/server/internal/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStatsLogsAtInterval(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	w := ecs.NewWorld(zap.NewNop())
	w.CreateEntity()
	w.CreateEntity()

	stats := system.NewStatsSystem(w, 100*time.Millisecond, log)

	stats.Update(40 * time.Millisecond)
	stats.Update(40 * time.Millisecond)
	assert.Equal(t, 0, logs.FilterMessage("world stats").Len())

	stats.Update(40 * time.Millisecond)
	entries := logs.FilterMessage("world stats").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.EqualValues(t, 2, fields["alive"])

	// Accumulator resets; the next report needs a full interval again.
	stats.Update(40 * time.Millisecond)
	assert.Equal(t, 1, logs.FilterMessage("world stats").Len())
}

func TestWorldSystemMirrorsTraceToBus(t *testing.T) {
	bus := event.NewBus()
	w := ecs.NewWorld(zap.NewNop())
	ws := system.NewWorldSystem(w, bus)

	var created []event.EntityCreated
	var destroyed []event.EntityDestroyed
	event.Subscribe(bus, func(ev event.EntityCreated) { created = append(created, ev) })
	event.Subscribe(bus, func(ev event.EntityDestroyed) { destroyed = append(destroyed, ev) })

	w.EnqueueSpawn("mirror-test", nil)
	ws.Update(time.Millisecond)

	bus.SwapBuffers()
	bus.DispatchAll()
	require.Len(t, created, 1)
	assert.Equal(t, ecs.Cause("mirror-test"), created[0].Cause)

	w.DestroyEntityWithCause(created[0].Entity, "mirror-kill")
	ws.Update(time.Millisecond)

	bus.SwapBuffers()
	bus.DispatchAll()
	require.Len(t, destroyed, 1)
	assert.Equal(t, ecs.Cause("mirror-kill"), destroyed[0].Cause)
	assert.Equal(t, created[0].Entity, destroyed[0].Entity)
}
