package scripting_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/emberfall/server/internal/component"
	"github.com/emberfall/server/internal/core/ecs"
	"github.com/emberfall/server/internal/scripting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testScript = `
function slow_regen(ctx)
    if ctx.hp < ctx.max_hp then
        return { hp = ctx.hp + 1 }
    end
    return nil
end

function burn_out(ctx)
    if ctx.hp <= 1 then
        return { destroy = true }
    end
    return { hp = ctx.hp - 1 }
end
`

func newTestEngine(t *testing.T) *scripting.Engine {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "behaviours.lua"), []byte(testScript), 0o644))

	engine, err := scripting.NewEngine(dir, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(engine.Close)
	return engine
}

func TestEngineMissingDirIsEmpty(t *testing.T) {
	engine, err := scripting.NewEngine(filepath.Join(t.TempDir(), "absent"), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer engine.Close()

	assert.False(t, engine.HasFunction("slow_regen"))
}

func TestEngineBadScriptFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.lua"), []byte("function ("), 0o644))

	_, err := scripting.NewEngine(dir, zaptest.NewLogger(t))
	require.Error(t, err)
}

func TestCallBehaviour(t *testing.T) {
	engine := newTestEngine(t)
	require.True(t, engine.HasFunction("slow_regen"))

	res, err := engine.CallBehaviour("slow_regen", scripting.BehaviourContext{HP: 5, MaxHP: 10})
	require.NoError(t, err)
	assert.True(t, res.HasHP)
	assert.Equal(t, int32(6), res.SetHP)
	assert.False(t, res.Destroy)

	res, err = engine.CallBehaviour("slow_regen", scripting.BehaviourContext{HP: 10, MaxHP: 10})
	require.NoError(t, err)
	assert.False(t, res.HasHP, "nil return means no changes")
}

func TestCallBehaviourUnknownFunction(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.CallBehaviour("no_such_fn", scripting.BehaviourContext{})
	require.ErrorContains(t, err, "not found")
}

func TestScriptRefDrivesHealth(t *testing.T) {
	engine := newTestEngine(t)
	w := ecs.NewWorld(zaptest.NewLogger(t))

	e := w.CreateEntity()
	_, err := ecs.Add(w, e, component.NewHealth(10))
	require.NoError(t, err)
	h, err := ecs.Get[component.Health](w, e)
	require.NoError(t, err)
	h.Current = 4

	_, err = ecs.Add(w, e, scripting.ScriptRef{Fn: "slow_regen", Engine: engine})
	require.NoError(t, err)

	w.Tick(50 * time.Millisecond)
	assert.Equal(t, int32(5), h.Current)
	w.Tick(50 * time.Millisecond)
	assert.Equal(t, int32(6), h.Current)
}

func TestScriptRefDestroyRequest(t *testing.T) {
	engine := newTestEngine(t)
	w := ecs.NewWorld(zaptest.NewLogger(t))

	e := w.CreateEntity()
	_, err := ecs.Add(w, e, component.NewHealth(2))
	require.NoError(t, err)
	_, err = ecs.Add(w, e, scripting.ScriptRef{Fn: "burn_out", Engine: engine})
	require.NoError(t, err)

	w.Tick(time.Millisecond) // hp 2 -> 1
	require.True(t, w.IsAlive(e))

	w.Tick(time.Millisecond) // hp 1 -> destroy
	assert.False(t, w.IsAlive(e))
}
