package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/deckworks/agentdeck/internal/core/styles"
	"github.com/deckworks/agentdeck/internal/data/stores"
)

// HistoryCmd lists or clears the persisted notification history.
type HistoryCmd struct {
	flags *Flags
	clear bool
	limit int
}

// NewHistoryCmd creates a new history command.
func NewHistoryCmd(flags *Flags) *HistoryCmd {
	return &HistoryCmd{flags: flags}
}

// Flags returns the history-specific flags.
func (cmd *HistoryCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "clear",
			Usage:       "delete all persisted notifications",
			Destination: &cmd.clear,
		},
		&cli.IntFlag{
			Name:        "limit",
			Usage:       "max entries to print (0 = all)",
			Value:       50,
			Destination: &cmd.limit,
		},
	}
}

// Run prints the notification history, newest first.
func (cmd *HistoryCmd) Run(ctx context.Context, _ *cli.Command) error {
	db, err := stores.Open(filepath.Join(cmd.flags.Config.DataDir, "agentdeck.db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	store := stores.NewNotifyStore(db)

	if cmd.clear {
		if err := store.Clear(ctx); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		fmt.Println("notification history cleared")
		return nil
	}

	history, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	if len(history) == 0 {
		fmt.Println("no notifications recorded")
		return nil
	}

	if cmd.limit > 0 && len(history) > cmd.limit {
		history = history[:cmd.limit]
	}

	for _, n := range history {
		line := fmt.Sprintf("%s %s  %-8s %s",
			styles.NotifyIcon(string(n.Kind)),
			n.CreatedAt.Format("2006-01-02 15:04:05"),
			n.Kind,
			n.Title,
		)
		if n.Body != "" {
			line += " :: " + n.Body
		}
		fmt.Println(line)
	}
	return nil
}
