package cli

import (
	"context"

	"github.com/dailysync/upsc/pkg/controller"
	"github.com/dailysync/upsc/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		cfg  config
		addr string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Listen address",
			Value:       ":8000",
			Sources:     cli.EnvVars("DAILYSYNC_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)
	flags = append(flags, scraperFlags(&cfg)...)

	return &cli.Command{
		Name:  "serve",
		Usage: "Run the content API server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)

			uc, err := cfg.newUseCase(ctx)
			if err != nil {
				return err
			}

			logging.From(ctx).Info("starting server", "addr", addr)
			if err := controller.New(uc).Run(addr); err != nil {
				return goerr.Wrap(err, "server stopped", goerr.Value("addr", addr))
			}
			return nil
		},
	}
}
