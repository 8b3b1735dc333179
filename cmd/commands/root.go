// Package commands wires the todo CLI.
package commands

import (
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/dohr-michael/todo/internal/config"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "todo",
		Usage: "A small persistent task list",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ConfigPath(),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.StringFlag{
				Name:  "storage",
				Usage: "Storage driver override (file, sqlite, memory)",
			},
			&cli.StringFlag{
				Name:  "data",
				Usage: "Storage path override",
			},
		},
		Commands: []*cli.Command{
			NewAddCommand(),
			NewListCommand(),
			NewToggleCommand(),
			NewEditCommand(),
			NewRemoveCommand(),
			NewClearCommand(),
			NewExportCommand(),
			NewViewCommand(),
			NewHistoryCommand(),
			NewTUICommand(),
		},
		Action: runDefault,
	}
}

// runDefault opens the TUI on a terminal and prints the list otherwise.
func runDefault(ctx context.Context, cmd *cli.Command) error {
	if stdout(cmd) == io.Writer(os.Stdout) && term.IsTerminal(int(os.Stdout.Fd())) {
		return runTUI(ctx, cmd)
	}
	return runList(ctx, cmd)
}
