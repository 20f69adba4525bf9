package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emberfall/server/internal/config"
	"github.com/emberfall/server/internal/core/ecs"
	"github.com/emberfall/server/internal/core/event"
	coresys "github.com/emberfall/server/internal/core/system"
	"github.com/emberfall/server/internal/data"
	"github.com/emberfall/server/internal/scripting"
	"github.com/emberfall/server/internal/system"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "emberfall.toml", "path to server config")
	flag.Parse()

	// 1. Load config; a missing file runs on defaults.
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg = config.Default()
		} else {
			return fmt.Errorf("load config: %w", err)
		}
	}
	cfg.Server.StartTime = time.Now().Unix()

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name, cfg.Server.ID)

	// 3. World + event bus
	bus := event.NewBus()
	world := ecs.NewWorld(log.Named("world"), ecs.WithMaxDelta(cfg.Simulation.MaxDelta))

	// 4. Scripting engine
	engine, err := scripting.NewEngine(cfg.Simulation.ScriptsDir, log.Named("lua"))
	if err != nil {
		return fmt.Errorf("scripting engine: %w", err)
	}
	defer engine.Close()

	// 5. Spawn table
	table, err := data.LoadSpawnTable(cfg.Simulation.SpawnTable)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("spawn table missing; world starts empty",
				zap.String("path", cfg.Simulation.SpawnTable))
			table = &data.SpawnTable{}
		} else {
			return fmt.Errorf("spawn table: %w", err)
		}
	}

	// 6. Outer system runner
	runner := coresys.NewRunner()
	runner.Register(system.NewEventSystem(bus))
	runner.Register(system.NewSpawnDirector(world, table, engine, bus, log.Named("spawn")))
	runner.Register(system.NewWorldSystem(world, bus))
	runner.Register(system.NewStatsSystem(world, cfg.Simulation.StatsInterval, log.Named("stats")))

	// 7. Simulation loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()

	log.Info("simulation loop started",
		zap.String("server", cfg.Server.Name),
		zap.Duration("tick_rate", cfg.Simulation.TickRate))

	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			runner.Tick(dt)
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			world.StopAllSystems()
			// A couple of drain ticks so queued destroys still apply.
			for i := 0; i < 2; i++ {
				runner.Tick(cfg.Simulation.TickRate)
			}
			log.Info("server stopped",
				zap.Int("alive_at_exit", world.AliveCount()),
				zap.Uint64("frames", world.Frame()))
			return nil
		}
	}
}

func printBanner(serverName string, serverID int) {
	fmt.Println()
	fmt.Println("  emberfall world server  v0.1.0")
	fmt.Printf("  server: %s (id: %d)\n\n", serverName, serverID)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
