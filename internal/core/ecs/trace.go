package ecs

// TraceKind labels a lifecycle trace record.
type TraceKind string

const (
	TraceCreate  TraceKind = "create"
	TraceDestroy TraceKind = "destroy"
	TraceStart   TraceKind = "start"
	TracePanic   TraceKind = "panic"
)

// TraceEvent is a cause-tagged record of a lifecycle transition. Purely for
// observability; nothing in the world depends on a tracer being installed.
type TraceEvent struct {
	Kind   TraceKind
	Entity EntityID
	Cause  Cause
}

// TraceFunc receives lifecycle trace records on the scheduling goroutine.
type TraceFunc func(TraceEvent)

// SetTracer installs the trace sink. Simulation goroutine only; pass nil to
// remove.
func (w *World) SetTracer(fn TraceFunc) {
	w.tracer = fn
}

func (w *World) trace(ev TraceEvent) {
	if w.tracer != nil {
		w.tracer(ev)
	}
}
