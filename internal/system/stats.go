package system

import (
	"time"

	"github.com/emberfall/server/internal/core/ecs"
	coresys "github.com/emberfall/server/internal/core/system"
	"go.uber.org/zap"
)

// StatsSystem periodically reports world population counters. Phase 3
// (Observe) — runs after the world tick so the numbers reflect this frame.
// Purely diagnostic.
type StatsSystem struct {
	world    *ecs.World
	log      *zap.Logger
	interval time.Duration
	elapsed  time.Duration
}

func NewStatsSystem(w *ecs.World, interval time.Duration, log *zap.Logger) *StatsSystem {
	return &StatsSystem{
		world:    w,
		log:      log,
		interval: interval,
	}
}

func (s *StatsSystem) Phase() coresys.Phase { return coresys.PhaseObserve }

func (s *StatsSystem) Update(dt time.Duration) {
	s.elapsed += dt
	if s.elapsed < s.interval {
		return
	}
	s.elapsed = 0
	s.log.Info("world stats",
		zap.Uint64("frame", s.world.Frame()),
		zap.Int("alive", s.world.AliveCount()),
		zap.Int("slots", s.world.EntityCount()))
}
