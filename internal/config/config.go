// Package config loads settings from embedded defaults, an optional YAML
// file and POCKETPAL_* environment variables.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"pocketpal/internal/storage"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// EnvPrefix prefixes every environment variable the config reads
const EnvPrefix = "POCKETPAL_"

// PathEnv names the variable holding an override file path
const PathEnv = EnvPrefix + "CONFIG"

// Config holds all settings
type Config struct {
	Storage StorageConfig `yaml:"storage" envPrefix:"STORAGE_"`
	Decay   DecayConfig   `yaml:"decay" envPrefix:"DECAY_"`
	Log     LogConfig     `yaml:"log" envPrefix:"LOG_"`
	UI      UIConfig      `yaml:"ui" envPrefix:"UI_"`
}

// StorageConfig selects where the game record lives
type StorageConfig struct {
	Backend string `yaml:"backend" env:"BACKEND"`
	Dir     string `yaml:"dir" env:"DIR"`
	Key     string `yaml:"key" env:"KEY"`
}

// DecayConfig controls the headless decay loop
type DecayConfig struct {
	Interval time.Duration `yaml:"interval" env:"INTERVAL"`
}

// LogConfig controls where log output goes
type LogConfig struct {
	File string `yaml:"file" env:"FILE"`
}

// UIConfig holds terminal UI settings
type UIConfig struct {
	Tick time.Duration `yaml:"tick" env:"TICK"`
}

// Load builds the configuration. path may be empty, in which case
// POCKETPAL_CONFIG is consulted.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path == "" {
		path = os.Getenv(PathEnv)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// Resolve fills in derived defaults and validates the result. Call it after
// applying command-line overrides.
func (c *Config) Resolve() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = storage.BackendJSON
	}
	if !slices.Contains(storage.Backends, c.Storage.Backend) {
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = storage.DefaultDir()
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("storage key is required")
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(c.Storage.Dir, "pocketpal.log")
	}
	if c.Decay.Interval <= 0 {
		return fmt.Errorf("decay interval must be positive, got %s", c.Decay.Interval)
	}
	if c.UI.Tick <= 0 {
		return fmt.Errorf("ui tick must be positive, got %s", c.UI.Tick)
	}
	return nil
}
