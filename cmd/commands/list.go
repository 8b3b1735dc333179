package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/todo/internal/tasks"
)

// NewListCommand returns the list subcommand.
func NewListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "Show tasks with their row numbers",
		Flags: []cli.Flag{
			filterFlag(),
			&cli.BoolFlag{
				Name:  "ids",
				Usage: "Show task ids",
			},
		},
		Action: runList,
	}
}

func runList(_ context.Context, cmd *cli.Command) error {
	s, err := openSession(cmd, stderr(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	f, err := tasks.ParseFilter(cmd.String("filter"))
	if err != nil {
		return err
	}

	row := 0
	for t := range s.store.Filtered(f) {
		row++
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		if cmd.Bool("ids") {
			fmt.Fprintf(s.out, "%4d  %s  %s %s\n", row, t.ID, box, t.Text)
		} else {
			fmt.Fprintf(s.out, "%4d  %s %s\n", row, box, t.Text)
		}
	}
	if row == 0 {
		fmt.Fprintln(s.out, "no tasks found")
	}
	return nil
}
