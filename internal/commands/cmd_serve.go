package commands

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/deckworks/agentdeck/internal/console"
	"github.com/deckworks/agentdeck/internal/core/notify"
	"github.com/deckworks/agentdeck/internal/data/stores"
	"github.com/deckworks/agentdeck/internal/server"
)

// tickInterval drives the notification center clock in serve mode, matching
// the TUI's toast tick resolution.
const tickInterval = 100 * time.Millisecond

// ServeCmd runs the console API server without a TUI.
type ServeCmd struct {
	flags   *Flags
	version string
	listen  string
}

// NewServeCmd creates a new serve command.
func NewServeCmd(flags *Flags, version string) *ServeCmd {
	return &ServeCmd{flags: flags, version: version}
}

// Flags returns the serve-specific flags.
func (cmd *ServeCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "listen",
			Usage:       "listen address (overrides config)",
			Sources:     cli.EnvVars("AGENTDECK_LISTEN"),
			Destination: &cmd.listen,
		},
	}
}

// Run starts the HTTP server and blocks until interrupted.
func (cmd *ServeCmd) Run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config
	if cmd.listen != "" {
		cfg.Server.Listen = cmd.listen
	}

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
	reporter := console.NewReporter(center, cfg.Mute)
	status := console.NewStatusService(cmd.version, center, nil)

	srv := server.New(cfg.Server, center, reporter, status)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The center has no timers of its own; a ticker advances it so
	// auto-hide and removal fire without a TUI tick loop.
	go center.Run(ctx, tickInterval)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return <-errCh
}
