package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/todo/internal/export"
	"github.com/dohr-michael/todo/internal/storage"
	"github.com/dohr-michael/todo/internal/tasks"
)

// NewHistoryCommand returns the history subcommand.
func NewHistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recent changes from the journal",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Number of entries to show (0 for all)",
				Value:   20,
			},
		},
		Action: runHistory,
	}
}

func runHistory(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	setupLogging(cmd, cfg, stderr(cmd))
	out := stdout(cmd)

	if !cfg.Log.JournalEnabled() {
		fmt.Fprintln(out, "journal disabled")
		return nil
	}

	entries, err := tasks.ReadJournal(storage.NewJournal(cfg.Log.Journal), int(cmd.Int("limit")))
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "no history")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tOP\tTASK\tTEXT")
	for _, e := range entries {
		id := e.TaskID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			e.At.In(time.Local).Format(time.DateTime),
			e.Op,
			id,
			export.OneLine(e.Text),
		)
	}
	return w.Flush()
}
