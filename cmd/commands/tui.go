package commands

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/todo/clients/tui"
)

// NewTUICommand returns the tui subcommand.
func NewTUICommand() *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Launch the interactive TUI",
		Action: runTUI,
	}
}

// runTUI logs to the configured file while the TUI owns the terminal.
func runTUI(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logFile, err := openLogFile(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	s, err := openSessionWith(cmd, cfg, logFile)
	if err != nil {
		return err
	}
	defer s.Close()

	slog.Info("tui started", "tasks", s.store.Len())
	return tui.Run(ctx, s.store)
}
