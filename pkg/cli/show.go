package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func showCommand() *cli.Command {
	var (
		cfg       config
		rangeMode bool
	)

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "range",
			Aliases:     []string{"r"},
			Usage:       "Treat arguments as an inclusive date range",
			Destination: &rangeMode,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:      "show",
		Usage:     "Print stored study content for a date (or a range with --range <start> <end>)",
		ArgsUsage: "<DD-MM-YYYY> [<DD-MM-YYYY>]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			date := c.Args().First()
			if date == "" {
				return goerr.New("date argument is required (DD-MM-YYYY)")
			}

			ctx = cfg.setupLogger(ctx)

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			uc := newQueryUseCase(repo)

			var out any
			if rangeMode {
				end := c.Args().Get(1)
				if end == "" {
					return goerr.New("range mode needs both start and end dates")
				}
				out, err = uc.GetRange(ctx, date, end)
			} else {
				out, err = uc.Get(ctx, date)
			}
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return goerr.Wrap(err, "failed to encode content")
			}
			fmt.Fprintln(c.Root().Writer, string(data))
			return nil
		},
	}
}
