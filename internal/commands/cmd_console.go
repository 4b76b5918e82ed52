package commands

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/deckworks/agentdeck/internal/console"
	"github.com/deckworks/agentdeck/internal/core/notify"
	"github.com/deckworks/agentdeck/internal/core/styles"
	"github.com/deckworks/agentdeck/internal/data/stores"
	"github.com/deckworks/agentdeck/internal/tui"
)

// ConsoleCmd opens the interactive console TUI. It is the default command.
type ConsoleCmd struct {
	flags   *Flags
	version string
}

// NewConsoleCmd creates a new console command.
func NewConsoleCmd(flags *Flags, version string) *ConsoleCmd {
	return &ConsoleCmd{flags: flags, version: version}
}

// Run executes the console. Exported for use as the default command.
func (cmd *ConsoleCmd) Run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config
	styles.SetTheme(cfg.Theme)

	db, err := stores.Open(filepath.Join(cfg.DataDir, "agentdeck.db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	center := notify.NewCenter(stores.NewNotifyStore(db), notify.WithDefaultDuration(cfg.Toasts.Duration()))
	executor := console.NewExecutor(cfg.Executor)

	model := tui.New(tui.Options{
		Config:   cfg,
		Center:   center,
		Reporter: console.NewReporter(center, cfg.Mute),
		Executor: executor,
		Status:   console.NewStatusService(cmd.version, center, executor),
		Version:  cmd.version,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run console: %w", err)
	}
	return nil
}
