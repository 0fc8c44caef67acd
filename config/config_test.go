package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conduit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, uint64(30), cfg.Sim.StepFrames)
	assert.Equal(t, uint64(10), cfg.Sim.FastStepFrames)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 100*time.Millisecond, cfg.Server.StepInterval)
	assert.Equal(t, uint64(10000), cfg.Server.MaxCycles)
	assert.Equal(t, "", cfg.LevelsDir)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("PORT", "")
	path := writeConfig(t, `
levels_dir: " ./levels "
store:
  driver: BuntDB
  path: ":memory:"
sim:
  step_frames: 12
server:
  port: 9000
  step_interval: 250ms
  max_cycles: 50
log:
  level: DEBUG
  json: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "./levels", cfg.LevelsDir)
	assert.Equal(t, "buntdb", cfg.Store.Driver)
	assert.Equal(t, uint64(12), cfg.Sim.StepFrames)
	assert.Equal(t, uint64(10), cfg.Sim.FastStepFrames, "unset keys keep their default")
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.Server.StepInterval)
	assert.Equal(t, uint64(50), cfg.Server.MaxCycles)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
}

func TestPortFromEnv(t *testing.T) {
	t.Setenv("PORT", "7777")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7777, cfg.Server.Port)

	t.Setenv("PORT", "seventy")
	_, err = Load("")
	assert.Error(t, err)
}

func TestInvalid(t *testing.T) {
	t.Setenv("PORT", "")
	for name, text := range map[string]string{
		"driver":     "store: {driver: mysql}",
		"empty path": "store: {path: ''}",
		"port":       "server: {port: 70000}",
		"max cycles": "server: {max_cycles: 0}",
		"log level":  "log: {level: loud}",
		"not yaml":   "store: [",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, text))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSetupLogging(t *testing.T) {
	defer log.SetLevel(log.GetLevel())
	defer log.SetFormatter(log.StandardLogger().Formatter)

	cfg := defaults()
	cfg.Log.Level = "warn"
	cfg.Log.JSON = true
	cfg.SetupLogging()
	assert.Equal(t, log.WarnLevel, log.GetLevel())
	assert.IsType(t, &log.JSONFormatter{}, log.StandardLogger().Formatter)
}
