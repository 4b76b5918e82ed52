// Package commands implements the agentdeck CLI commands.
package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/deckworks/agentdeck/internal/core/config"
)

// Flags holds global flag values and state shared by all commands.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "agentdeck", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "agentdeck")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/agentdeck/agentdeck.log
// On Linux: $XDG_STATE_HOME/agentdeck/agentdeck.log (defaults to ~/.local/state/...)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "agentdeck", "agentdeck.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "agentdeck", "agentdeck.log")
	}

	return filepath.Join(home, ".local", "state", "agentdeck", "agentdeck.log")
}
