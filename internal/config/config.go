package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Simulation SimulationConfig `toml:"simulation"`
	Logging    LoggingConfig    `toml:"logging"`
}

type ServerConfig struct {
	Name      string `toml:"name"`
	ID        int    `toml:"id"`
	StartTime int64  // set at boot, not from config
}

type SimulationConfig struct {
	TickRate      time.Duration `toml:"tick_rate"`
	MaxDelta      time.Duration `toml:"max_delta"`
	ScriptsDir    string        `toml:"scripts_dir"`
	SpawnTable    string        `toml:"spawn_table"`
	StatsInterval time.Duration `toml:"stats_interval"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Default returns a runnable configuration; Load overlays the file on top.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "emberfall",
			ID:   1,
		},
		Simulation: SimulationConfig{
			TickRate:      50 * time.Millisecond,
			MaxDelta:      time.Second,
			ScriptsDir:    "scripts",
			SpawnTable:    "data/spawns.yaml",
			StatsInterval: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) validate() error {
	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("simulation.tick_rate must be positive, got %s", c.Simulation.TickRate)
	}
	if c.Simulation.MaxDelta < c.Simulation.TickRate {
		return fmt.Errorf("simulation.max_delta (%s) must not be below tick_rate (%s)",
			c.Simulation.MaxDelta, c.Simulation.TickRate)
	}
	if c.Simulation.StatsInterval < c.Simulation.TickRate {
		return fmt.Errorf("simulation.stats_interval (%s) must not be below tick_rate (%s)",
			c.Simulation.StatsInterval, c.Simulation.TickRate)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
