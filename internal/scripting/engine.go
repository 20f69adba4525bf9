package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for scripted entity behaviours.
// Single-goroutine access only (the simulation loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory. A missing directory is not an error; the engine simply has no
// functions loaded.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

func (e *Engine) Close() {
	e.vm.Close()
}

// BehaviourContext is the pre-packed state handed to a Lua behaviour
// function as a table.
type BehaviourContext struct {
	Index      uint32
	Generation uint32
	DtSeconds  float64
	HP         int32
	MaxHP      int32
	X          float64
	Y          float64
}

// BehaviourResult carries the mutations a Lua behaviour asked for. Zero
// value means "change nothing".
type BehaviourResult struct {
	SetHP   int32
	HasHP   bool
	Destroy bool
}

// HasFunction reports whether a global Lua function with the name exists.
func (e *Engine) HasFunction(name string) bool {
	fn := e.vm.GetGlobal(name)
	return fn != lua.LNil && fn.Type() == lua.LTFunction
}

// CallBehaviour invokes the named Lua function with the context table and
// decodes the optional result table. Lua errors are returned, not raised.
func (e *Engine) CallBehaviour(name string, ctx BehaviourContext) (BehaviourResult, error) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return BehaviourResult{}, fmt.Errorf("lua function %s not found", name)
	}

	t := e.vm.NewTable()
	t.RawSetString("index", lua.LNumber(ctx.Index))
	t.RawSetString("generation", lua.LNumber(ctx.Generation))
	t.RawSetString("dt", lua.LNumber(ctx.DtSeconds))
	t.RawSetString("hp", lua.LNumber(ctx.HP))
	t.RawSetString("max_hp", lua.LNumber(ctx.MaxHP))
	t.RawSetString("x", lua.LNumber(ctx.X))
	t.RawSetString("y", lua.LNumber(ctx.Y))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		return BehaviourResult{}, fmt.Errorf("lua %s: %w", name, err)
	}

	ret := e.vm.Get(-1)
	e.vm.Pop(1)

	var res BehaviourResult
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return res, nil // nil return means "no changes"
	}
	if v := tbl.RawGetString("hp"); v != lua.LNil {
		if n, isNum := v.(lua.LNumber); isNum {
			res.SetHP = int32(n)
			res.HasHP = true
		}
	}
	if v := tbl.RawGetString("destroy"); v != lua.LNil {
		res.Destroy = lua.LVAsBool(v)
	}
	return res, nil
}
