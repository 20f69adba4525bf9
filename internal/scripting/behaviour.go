package scripting

import (
	"time"

	"github.com/emberfall/server/internal/component"
	"github.com/emberfall/server/internal/core/ecs"
	"go.uber.org/zap"
)

// CauseScript tags destroys requested by a Lua behaviour.
const CauseScript ecs.Cause = "script"

// ScriptRef binds an entity to a named Lua behaviour function. Each tick the
// function receives the entity's health and position and may adjust HP or
// request destruction.
type ScriptRef struct {
	Fn     string
	Engine *Engine
}

func (s *ScriptRef) Update(w *ecs.World, e ecs.EntityID, dt time.Duration) {
	if s.Engine == nil || s.Fn == "" {
		return
	}
	ctx := BehaviourContext{
		Index:      e.Index(),
		Generation: e.Generation(),
		DtSeconds:  dt.Seconds(),
	}
	h := ecs.TryGet[component.Health](w, e)
	if h != nil {
		ctx.HP = h.Current
		ctx.MaxHP = h.Max
	}
	t := ecs.TryGet[component.Transform](w, e)
	if t != nil {
		ctx.X = t.X
		ctx.Y = t.Y
	}

	res, err := s.Engine.CallBehaviour(s.Fn, ctx)
	if err != nil {
		s.Engine.log.Error("scripted behaviour failed",
			zap.Stringer("entity", e),
			zap.String("fn", s.Fn),
			zap.Error(err))
		return
	}
	if res.HasHP && h != nil {
		h.Current = res.SetHP
		if h.Current > h.Max {
			h.Current = h.Max
		}
		if h.Current < 0 {
			h.Current = 0
		}
	}
	if res.Destroy {
		w.DestroyEntityWithCause(e, CauseScript)
	}
}
