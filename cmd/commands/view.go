package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/dohr-michael/todo/clients/tui/components"
	"github.com/dohr-michael/todo/internal/tasks"
)

// NewViewCommand returns the view subcommand.
func NewViewCommand() *cli.Command {
	return &cli.Command{
		Name:   "view",
		Usage:  "Render the list as a styled checklist",
		Flags:  []cli.Flag{filterFlag()},
		Action: runView,
	}
}

func runView(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd, stderr(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	f, err := tasks.ParseFilter(cmd.String("filter"))
	if err != nil {
		return err
	}

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	fmt.Fprintln(s.out, components.RenderChecklist(s.store.Tasks(), f, width))
	return nil
}
