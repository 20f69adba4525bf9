package config_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/emberfall/server/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
name = "testland"
id = 7

[simulation]
tick_rate = 200000000

[logging]
level = "debug"
format = "json"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "testland", cfg.Server.Name)
	assert.Equal(t, 7, cfg.Server.ID)
	assert.Equal(t, 200*time.Millisecond, cfg.Simulation.TickRate)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, time.Second, cfg.Simulation.MaxDelta)
	assert.Equal(t, "data/spawns.yaml", cfg.Simulation.SpawnTable)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadRejectsBadTickRate(t *testing.T) {
	path := writeConfig(t, `
[simulation]
tick_rate = -5
`)
	_, err := config.Load(path)
	require.ErrorContains(t, err, "tick_rate")
}

func TestLoadRejectsBadFormat(t *testing.T) {
	path := writeConfig(t, `
[logging]
format = "xml"
`)
	_, err := config.Load(path)
	require.ErrorContains(t, err, "logging.format")
}

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	assert.Positive(t, cfg.Simulation.TickRate)
	assert.GreaterOrEqual(t, cfg.Simulation.MaxDelta, cfg.Simulation.TickRate)
}
