package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func datesCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "dates",
		Usage: "List dates that have stored content, newest first",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			dates, err := newQueryUseCase(repo).Dates(ctx)
			if err != nil {
				return err
			}

			for _, d := range dates {
				fmt.Fprintln(c.Root().Writer, d)
			}
			return nil
		},
	}
}
