package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/todo/internal/export"
)

// NewExportCommand returns the export subcommand.
func NewExportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write the full list to stdout",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format (json, yaml, markdown)",
				Value: string(export.FormatJSON),
			},
		},
		Action: runExport,
	}
}

func runExport(_ context.Context, cmd *cli.Command) error {
	format, err := export.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	s, err := openSession(cmd, stderr(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	return export.Write(s.out, s.store.Tasks(), format)
}
