package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func generateCommand() *cli.Command {
	var cfg config

	flags := append(globalFlags(&cfg), llmFlags(&cfg)...)
	flags = append(flags, scraperFlags(&cfg)...)

	return &cli.Command{
		Name:      "generate",
		Usage:     "Generate and save study content for a date (runs synchronously)",
		ArgsUsage: "<DD-MM-YYYY>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			date := c.Args().First()
			if date == "" {
				return goerr.New("date argument is required (DD-MM-YYYY)")
			}

			ctx = cfg.setupLogger(ctx)

			uc, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}

			sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			sp.Suffix = " generating content for " + date
			sp.Start()
			summary, err := uc.Generate(ctx, date)
			sp.Stop()
			if err != nil {
				return goerr.Wrap(err, "content generation failed")
			}

			w := c.Root().Writer
			fmt.Fprintf(w, "%s\n", summary.Message)
			fmt.Fprintf(w, "date:     %s\n", summary.Date)
			fmt.Fprintf(w, "sections: %d\n", summary.SectionsCount)
			fmt.Fprintf(w, "cards:    %d\n", summary.CardsCount)
			fmt.Fprintf(w, "mindmaps: %d\n", summary.MindmapsCount)
			fmt.Fprintf(w, "prelims:  %d\n", summary.PrelimsCount)
			fmt.Fprintf(w, "mains:    %d\n", summary.MainsCount)
			return nil
		},
	}
}
