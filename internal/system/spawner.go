package system

import (
	"time"

	"github.com/emberfall/server/internal/component"
	"github.com/emberfall/server/internal/core/ecs"
	"github.com/emberfall/server/internal/core/event"
	coresys "github.com/emberfall/server/internal/core/system"
	"github.com/emberfall/server/internal/data"
	"github.com/emberfall/server/internal/scripting"
	"go.uber.org/zap"
)

// SpawnDirector feeds deferred spawn requests into the world from the YAML
// spawn table: the initial population at boot, then respawns when spawned
// entities die. Phase 1 (Direct), so requests queued here land in the very
// next world tick. All state is touched on the simulation goroutine only;
// the thread-safe EnqueueSpawn is the single point of contact with the
// world.
type SpawnDirector struct {
	world  *ecs.World
	table  *data.SpawnTable
	engine *scripting.Engine
	log    *zap.Logger

	respawnDelay map[string]time.Duration
	spawnedFrom  map[ecs.EntityID]string
	pending      []respawnTimer
	booted       bool
}

type respawnTimer struct {
	archetype string
	remaining time.Duration
}

func NewSpawnDirector(w *ecs.World, table *data.SpawnTable, engine *scripting.Engine, bus *event.Bus, log *zap.Logger) *SpawnDirector {
	d := &SpawnDirector{
		world:        w,
		table:        table,
		engine:       engine,
		log:          log,
		respawnDelay: make(map[string]time.Duration),
		spawnedFrom:  make(map[ecs.EntityID]string),
	}
	for _, s := range table.Spawns {
		if s.RespawnDelay > 0 {
			d.respawnDelay[s.Archetype] = time.Duration(s.RespawnDelay) * time.Second
		}
	}
	if bus != nil {
		event.Subscribe(bus, d.onEntityDestroyed)
	}
	return d
}

func (d *SpawnDirector) Phase() coresys.Phase { return coresys.PhaseDirect }

func (d *SpawnDirector) Update(dt time.Duration) {
	if !d.booted {
		d.booted = true
		d.bootSpawns()
	}
	d.tickRespawns(dt)
}

func (d *SpawnDirector) bootSpawns() {
	total := 0
	for _, s := range d.table.Spawns {
		for i := 0; i < s.Count; i++ {
			d.requestSpawn(s.Archetype)
			total++
		}
	}
	d.log.Info("initial spawns queued", zap.Int("count", total))
}

// onEntityDestroyed schedules a respawn when a table-spawned entity dies and
// its spawn entry carries a respawn delay. Delivered by the event system one
// tick after the destroy.
func (d *SpawnDirector) onEntityDestroyed(ev event.EntityDestroyed) {
	name, ok := d.spawnedFrom[ev.Entity]
	if !ok {
		return
	}
	delete(d.spawnedFrom, ev.Entity)
	delay, ok := d.respawnDelay[name]
	if !ok {
		return
	}
	d.pending = append(d.pending, respawnTimer{archetype: name, remaining: delay})
}

func (d *SpawnDirector) tickRespawns(dt time.Duration) {
	kept := d.pending[:0]
	for _, t := range d.pending {
		t.remaining -= dt
		if t.remaining <= 0 {
			d.requestSpawn(t.archetype)
			continue
		}
		kept = append(kept, t)
	}
	d.pending = kept
}

// requestSpawn queues a deferred creation whose callback dresses the fresh
// entity with the archetype's components and records its origin for respawn
// tracking.
func (d *SpawnDirector) requestSpawn(name string) {
	arch := d.table.Lookup(name)
	if arch == nil {
		d.log.Warn("spawn request for unknown archetype", zap.String("archetype", name))
		return
	}
	d.world.EnqueueSpawn(ecs.Cause("spawn:"+name), func(w *ecs.World, e ecs.EntityID) {
		d.spawnedFrom[e] = name
		if err := dressEntity(w, e, arch, d.engine); err != nil {
			d.log.Error("spawn completion failed",
				zap.Stringer("entity", e),
				zap.String("archetype", name),
				zap.Error(err))
		}
	})
}

// dressEntity attaches the archetype's components to a freshly spawned
// entity. Runs on the simulation goroutine during the flush-spawn phase.
func dressEntity(w *ecs.World, e ecs.EntityID, arch *data.Archetype, engine *scripting.Engine) error {
	cause := ecs.Cause("spawn:" + arch.Name)
	if _, err := ecs.AddWithCause(w, e, cause, component.Transform{X: arch.X, Y: arch.Y}); err != nil {
		return err
	}
	if arch.HP > 0 {
		if _, err := ecs.AddWithCause(w, e, cause, component.NewHealth(arch.HP)); err != nil {
			return err
		}
	}
	if arch.SpeedX != 0 || arch.SpeedY != 0 {
		if _, err := ecs.AddWithCause(w, e, cause, component.Velocity{DX: arch.SpeedX, DY: arch.SpeedY}); err != nil {
			return err
		}
	}
	if arch.Lifetime > 0 {
		if _, err := ecs.AddWithCause(w, e, cause, component.Lifetime{Remaining: arch.LifetimeDuration()}); err != nil {
			return err
		}
	}
	if arch.Script != "" && engine != nil {
		if _, err := ecs.AddWithCause(w, e, cause, scripting.ScriptRef{Fn: arch.Script, Engine: engine}); err != nil {
			return err
		}
	}
	return nil
}
