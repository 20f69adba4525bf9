package component_test

import (
	"testing"
	"time"

	"github.com/emberfall/server/internal/component"
	"github.com/emberfall/server/internal/core/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestHealthDamageAndHeal(t *testing.T) {
	h := component.NewHealth(100)
	assert.False(t, h.Damage(30))
	assert.Equal(t, int32(70), h.Current)

	assert.True(t, h.Damage(200), "dropping to zero reports death")
	assert.Equal(t, int32(0), h.Current)
	assert.False(t, h.Damage(10), "already at zero")

	h.Heal(50)
	assert.Equal(t, int32(50), h.Current)
	h.Heal(500)
	assert.Equal(t, int32(100), h.Current, "heal clamps at max")
}

func TestVelocityMovesTransform(t *testing.T) {
	w := ecs.NewWorld(zaptest.NewLogger(t))
	e := w.CreateEntity()
	_, err := ecs.Add(w, e, component.Transform{X: 1, Y: 1})
	require.NoError(t, err)
	_, err = ecs.Add(w, e, component.Velocity{DX: 2, DY: -4})
	require.NoError(t, err)

	w.Tick(500 * time.Millisecond)

	tr := ecs.TryGet[component.Transform](w, e)
	require.NotNil(t, tr)
	assert.InDelta(t, 2.0, tr.X, 1e-9)
	assert.InDelta(t, -1.0, tr.Y, 1e-9)
}

func TestLifetimeExpiryDestroys(t *testing.T) {
	w := ecs.NewWorld(zaptest.NewLogger(t))
	e := w.CreateEntity()
	_, err := ecs.Add(w, e, component.Lifetime{Remaining: 100 * time.Millisecond})
	require.NoError(t, err)

	w.Tick(60 * time.Millisecond)
	assert.True(t, w.IsAlive(e), "still within lifetime")

	w.Tick(60 * time.Millisecond)
	assert.False(t, w.IsAlive(e), "expiry destroys at the same tick's flush")
}

func TestLifetimeDestroyCause(t *testing.T) {
	w := ecs.NewWorld(zaptest.NewLogger(t))

	var causes []ecs.Cause
	w.SetTracer(func(ev ecs.TraceEvent) {
		if ev.Kind == ecs.TraceDestroy {
			causes = append(causes, ev.Cause)
		}
	})

	e := w.CreateEntity()
	_, err := ecs.Add(w, e, component.Lifetime{Remaining: time.Millisecond})
	require.NoError(t, err)

	w.Tick(10 * time.Millisecond)
	require.Equal(t, []ecs.Cause{component.CauseLifetime}, causes)
}
