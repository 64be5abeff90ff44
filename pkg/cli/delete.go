package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func deleteCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:      "delete",
		Usage:     "Remove stored content for a date",
		ArgsUsage: "<DD-MM-YYYY>",
		Flags:     globalFlags(&cfg),
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

			if err := newQueryUseCase(repo).Delete(ctx, date); err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Deleted content for %s\n", date)
			return nil
		},
	}
}
