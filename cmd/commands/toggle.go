package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// NewToggleCommand returns the done subcommand, which flips completion.
func NewToggleCommand() *cli.Command {
	return &cli.Command{
		Name:      "done",
		Aliases:   []string{"toggle"},
		Usage:     "Flip a task between active and completed",
		ArgsUsage: "<row|id>",
		Flags:     []cli.Flag{filterFlag()},
		Action:    runToggle,
	}
}

func runToggle(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd, stderr(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	t, err := resolveRef(cmd, s.store)
	if err != nil {
		return err
	}
	if err := s.store.Toggle(t.ID); err != nil {
		return fmt.Errorf("toggle task: %w", err)
	}
	fmt.Fprintln(s.out, "ok")
	return nil
}
