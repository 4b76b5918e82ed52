// Package config handles configuration loading and validation for agentdeck.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Theme    string         `yaml:"theme"`
	Toasts   ToastsConfig   `yaml:"toasts"`
	Mute     []string       `yaml:"mute"` // glob patterns matched against notification titles
	Server   ServerConfig   `yaml:"server"`
	Executor ExecutorConfig `yaml:"executor"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// ToastsConfig controls the on-screen notification behavior.
type ToastsConfig struct {
	DurationMS int `yaml:"duration_ms"` // auto-hide delay, milliseconds
	MaxVisible int `yaml:"max_visible"` // max toasts rendered at once
}

// Duration returns the auto-hide delay as a time.Duration.
func (t ToastsConfig) Duration() time.Duration {
	return time.Duration(t.DurationMS) * time.Millisecond
}

// ServerConfig holds the HTTP server settings for serve mode.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// ExecutorConfig holds the code execution settings.
type ExecutorConfig struct {
	Command         []string `yaml:"command"`           // interpreter argv, snippet path appended
	TimeoutSeconds  int      `yaml:"timeout_seconds"`   // per-run wall clock limit
	CacheTTLMinutes int      `yaml:"cache_ttl_minutes"` // result cache entry lifetime
}

// Timeout returns the per-run limit as a time.Duration.
func (e ExecutorConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSeconds) * time.Second
}

// CacheTTL returns the cache entry lifetime as a time.Duration.
func (e ExecutorConfig) CacheTTL() time.Duration {
	return time.Duration(e.CacheTTLMinutes) * time.Minute
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme: "tokyo-night",
		Toasts: ToastsConfig{
			DurationMS: 5000,
			MaxVisible: 5,
		},
		Server: ServerConfig{
			Listen: "127.0.0.1:8642",
		},
		Executor: ExecutorConfig{
			Command:         []string{"python3"},
			TimeoutSeconds:  30,
			CacheTTLMinutes: 60,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills zero values with defaults so partial config files work.
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.Toasts.DurationMS == 0 {
		c.Toasts.DurationMS = def.Toasts.DurationMS
	}
	if c.Toasts.MaxVisible == 0 {
		c.Toasts.MaxVisible = def.Toasts.MaxVisible
	}
	if c.Server.Listen == "" {
		c.Server.Listen = def.Server.Listen
	}
	if len(c.Executor.Command) == 0 {
		c.Executor.Command = def.Executor.Command
	}
	if c.Executor.TimeoutSeconds == 0 {
		c.Executor.TimeoutSeconds = def.Executor.TimeoutSeconds
	}
	if c.Executor.CacheTTLMinutes == 0 {
		c.Executor.CacheTTLMinutes = def.Executor.CacheTTLMinutes
	}
}
