package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

// NewEditCommand returns the edit subcommand.
func NewEditCommand() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Replace a task's text",
		ArgsUsage: "<row|id> <text...>",
		Flags:     []cli.Flag{filterFlag()},
		Action:    runEdit,
	}
}

func runEdit(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd, stderr(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	t, err := resolveRef(cmd, s.store)
	if err != nil {
		return err
	}
	if _, err := s.store.BeginEdit(t.ID); err != nil {
		return err
	}
	if err := s.store.SaveEdit(strings.Join(cmd.Args().Tail(), " ")); err != nil {
		return fmt.Errorf("edit task: %w", err)
	}
	fmt.Fprintln(s.out, "ok")
	return nil
}
