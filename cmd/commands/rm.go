package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// NewRemoveCommand returns the rm subcommand.
func NewRemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Delete a task",
		ArgsUsage: "<row|id>",
		Flags:     []cli.Flag{filterFlag()},
		Action:    runRemove,
	}
}

func runRemove(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd, stderr(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	t, err := resolveRef(cmd, s.store)
	if err != nil {
		return err
	}
	if err := s.store.Remove(t.ID); err != nil {
		return fmt.Errorf("remove task: %w", err)
	}
	fmt.Fprintln(s.out, "ok")
	return nil
}
