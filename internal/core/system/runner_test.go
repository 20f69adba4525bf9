package system_test

import (
	"testing"
	"time"

	"github.com/emberfall/server/internal/core/system"
	"github.com/stretchr/testify/require"
)

type fake struct {
	phase system.Phase
	name  string
	log   *[]string
}

func (f *fake) Phase() system.Phase { return f.phase }

func (f *fake) Update(_ time.Duration) { *f.log = append(*f.log, f.name) }

func TestRunnerExecutesInPhaseOrder(t *testing.T) {
	var calls []string
	r := system.NewRunner()
	r.Register(&fake{phase: system.PhaseObserve, name: "observe", log: &calls})
	r.Register(&fake{phase: system.PhaseEvents, name: "events", log: &calls})
	r.Register(&fake{phase: system.PhaseSimulate, name: "simulate", log: &calls})
	r.Register(&fake{phase: system.PhaseDirect, name: "direct", log: &calls})

	r.Tick(time.Millisecond)
	require.Equal(t, []string{"events", "direct", "simulate", "observe"}, calls)
}

func TestRunnerStableWithinPhase(t *testing.T) {
	var calls []string
	r := system.NewRunner()
	r.Register(&fake{phase: system.PhaseDirect, name: "a", log: &calls})
	r.Register(&fake{phase: system.PhaseDirect, name: "b", log: &calls})

	r.Tick(time.Millisecond)
	r.Tick(time.Millisecond)
	require.Equal(t, []string{"a", "b", "a", "b"}, calls, "registration order holds within a phase")
}

func TestRunnerLateRegistration(t *testing.T) {
	var calls []string
	r := system.NewRunner()
	r.Register(&fake{phase: system.PhaseSimulate, name: "sim", log: &calls})
	r.Tick(time.Millisecond)

	r.Register(&fake{phase: system.PhaseEvents, name: "events", log: &calls})
	r.Tick(time.Millisecond)

	require.Equal(t, []string{"sim", "events", "sim"}, calls)
}
