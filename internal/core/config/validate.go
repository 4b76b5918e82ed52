package config

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/deckworks/agentdeck/internal/core/styles"
)

// Validate checks the configuration for values that would fail at runtime.
func (c *Config) Validate() error {
	if !styles.HasTheme(c.Theme) {
		return fmt.Errorf("unknown theme %q (available: %v)", c.Theme, styles.ThemeNames())
	}

	if c.Toasts.DurationMS < 0 {
		return fmt.Errorf("toasts.duration_ms must not be negative, got %d", c.Toasts.DurationMS)
	}
	if c.Toasts.MaxVisible < 1 {
		return fmt.Errorf("toasts.max_visible must be at least 1, got %d", c.Toasts.MaxVisible)
	}

	for _, pattern := range c.Mute {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid mute pattern %q", pattern)
		}
	}

	if c.Executor.TimeoutSeconds < 1 {
		return fmt.Errorf("executor.timeout_seconds must be at least 1, got %d", c.Executor.TimeoutSeconds)
	}

	return nil
}
