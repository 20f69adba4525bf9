package data

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Archetype holds static data for a spawnable entity kind loaded from YAML.
type Archetype struct {
	Name     string  `yaml:"name"`
	HP       int32   `yaml:"hp"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	SpeedX   float64 `yaml:"speed_x"`
	SpeedY   float64 `yaml:"speed_y"`
	Lifetime float64 `yaml:"lifetime"` // seconds; 0 = lives until destroyed
	Script   string  `yaml:"script"`   // lua behaviour function, optional
}

// LifetimeDuration converts the lifetime field to a duration.
func (a *Archetype) LifetimeDuration() time.Duration {
	return time.Duration(a.Lifetime * float64(time.Second))
}

// SpawnEntry defines how many of an archetype to spawn and how to respawn.
type SpawnEntry struct {
	Archetype    string `yaml:"archetype"`
	Count        int    `yaml:"count"`
	RespawnDelay int    `yaml:"respawn_delay"` // seconds; 0 = no respawn
}

// SpawnTable is the full spawn configuration for a world.
type SpawnTable struct {
	Archetypes []Archetype  `yaml:"archetypes"`
	Spawns     []SpawnEntry `yaml:"spawns"`

	byName map[string]*Archetype
}

// LoadSpawnTable reads and validates a YAML spawn table.
func LoadSpawnTable(path string) (*SpawnTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn table: %w", err)
	}
	var t SpawnTable
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parse spawn table: %w", err)
	}
	if err := t.index(); err != nil {
		return nil, fmt.Errorf("validate spawn table: %w", err)
	}
	return &t, nil
}

func (t *SpawnTable) index() error {
	t.byName = make(map[string]*Archetype, len(t.Archetypes))
	for i := range t.Archetypes {
		a := &t.Archetypes[i]
		if a.Name == "" {
			return fmt.Errorf("archetype %d has no name", i)
		}
		if _, dup := t.byName[a.Name]; dup {
			return fmt.Errorf("duplicate archetype %q", a.Name)
		}
		t.byName[a.Name] = a
	}
	for i, s := range t.Spawns {
		if s.Count <= 0 {
			return fmt.Errorf("spawn %d: count must be positive", i)
		}
		if _, ok := t.byName[s.Archetype]; !ok {
			return fmt.Errorf("spawn %d references unknown archetype %q", i, s.Archetype)
		}
	}
	return nil
}

// Lookup returns the archetype by name, or nil when absent.
func (t *SpawnTable) Lookup(name string) *Archetype {
	return t.byName[name]
}
