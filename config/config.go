package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/zucenko/conduit/sim"
)

type Config struct {
	// LevelsDir holds manifest.txt and the level files; empty means the
	// levels built into the binary.
	LevelsDir string       `yaml:"levels_dir"`
	Store     StoreConfig  `yaml:"store"`
	Sim       SimConfig    `yaml:"sim"`
	Server    ServerConfig `yaml:"server"`
	Log       LogConfig    `yaml:"log"`
}

type StoreConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

type SimConfig struct {
	StepFrames     uint64 `yaml:"step_frames"`
	FastStepFrames uint64 `yaml:"fast_step_frames"`
}

type ServerConfig struct {
	Port         int           `yaml:"port"`
	StepInterval time.Duration `yaml:"step_interval"`
	MaxCycles    uint64        `yaml:"max_cycles"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Load reads the YAML file at path over the defaults. An empty path gives
// the defaults. PORT in the environment overrides server.port.
func Load(path string) (Config, error) {
	cfg := defaults()
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return cfg, fmt.Errorf("PORT %q: %w", port, err)
		}
		cfg.Server.Port = p
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Store: StoreConfig{
			Driver: "sqlite",
			Path:   "data/profile.db",
		},
		Sim: SimConfig{
			StepFrames:     sim.StepFrames,
			FastStepFrames: sim.FastStepFrames,
		},
		Server: ServerConfig{
			Port:         8080,
			StepInterval: 100 * time.Millisecond,
			MaxCycles:    10000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func (c *Config) Normalize() {
	if c == nil {
		return
	}
	c.LevelsDir = strings.TrimSpace(c.LevelsDir)
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	c.Store.Path = strings.TrimSpace(c.Store.Path)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Sim.StepFrames == 0 {
		c.Sim.StepFrames = sim.StepFrames
	}
	if c.Sim.FastStepFrames == 0 {
		c.Sim.FastStepFrames = sim.FastStepFrames
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case "sqlite", "buntdb":
	default:
		return fmt.Errorf("store.driver must be sqlite or buntdb, got %q", c.Store.Driver)
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.StepInterval < 0 {
		return fmt.Errorf("server.step_interval must not be negative")
	}
	if c.Server.MaxCycles == 0 {
		return fmt.Errorf("server.max_cycles must be positive")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// SetupLogging applies the log section to the standard logrus logger.
func (c Config) SetupLogging() {
	if lvl, err := log.ParseLevel(c.Log.Level); err == nil {
		log.SetLevel(lvl)
	}
	if c.Log.JSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
