package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/deckworks/agentdeck/internal/commands"
	"github.com/deckworks/agentdeck/internal/core/config"
	"github.com/deckworks/agentdeck/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &commands.Flags{}

	consoleCmd := commands.NewConsoleCmd(flags, build())
	serveCmd := commands.NewServeCmd(flags, build())
	historyCmd := commands.NewHistoryCmd(flags)

	app := &cli.Command{
		Name:      "agentdeck",
		Usage:     "Console for driving an AI coding agent",
		UsageText: "agentdeck [global options] command [command options]",
		Description: `Agentdeck is a terminal console for an AI coding agent: run snippets,
watch outcomes, and keep an eye on system status. Outcomes surface as toast
notifications that auto-hide and can be dismissed independently.

Run 'agentdeck' with no arguments to open the interactive console.
Run 'agentdeck serve' to expose the same surface over HTTP and WebSocket.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("AGENTDECK_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <state-dir>/agentdeck.log)",
				Sources:     cli.EnvVars("AGENTDECK_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("AGENTDECK_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("AGENTDECK_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := os.MkdirAll(flags.DataDir, 0o755); err != nil {
				return ctx, fmt.Errorf("create data dir: %w", err)
			}

			logFile := flags.LogFile
			if logFile == "" && c.Args().First() != "history" {
				// The TUI owns the terminal; keep logs out of it.
				logFile = commands.DefaultLogFile()
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			logCloser = closer
			log.Logger = logger

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, err
			}
			flags.Config = cfg

			return ctx, nil
		},
		After: func(ctx context.Context, _ *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "console",
				Usage:  "open the interactive console (default)",
				Action: consoleCmd.Run,
			},
			{
				Name:   "serve",
				Usage:  "run the console API server",
				Flags:  serveCmd.Flags(),
				Action: serveCmd.Run,
			},
			{
				Name:   "history",
				Usage:  "list or clear persisted notifications",
				Flags:  historyCmd.Flags(),
				Action: historyCmd.Run,
			},
		},
		Action: consoleCmd.Run,
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("agentdeck exited with error")
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
