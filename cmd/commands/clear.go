package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// NewClearCommand returns the clear subcommand.
func NewClearCommand() *cli.Command {
	return &cli.Command{
		Name:   "clear",
		Usage:  "Delete every completed task",
		Action: runClear,
	}
}

func runClear(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd, stderr(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := s.store.ClearCompleted()
	if err != nil {
		return fmt.Errorf("clear completed: %w", err)
	}
	fmt.Fprintf(s.out, "removed %d\n", n)
	return nil
}
