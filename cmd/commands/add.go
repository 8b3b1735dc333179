package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

// NewAddCommand returns the add subcommand.
func NewAddCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Append a task",
		ArgsUsage: "<text...>",
		Action:    runAdd,
	}
}

func runAdd(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd, stderr(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.store.Add(strings.Join(cmd.Args().Slice(), " ")); err != nil {
		return fmt.Errorf("add task: %w", err)
	}
	fmt.Fprintln(s.out, "ok")
	return nil
}
