package cli

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string) *Error {
	// Optional .env in the working directory, matching local dev setups.
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:  "dailysync",
		Usage: "Daily current-affairs study content generator for UPSC preparation",
		Commands: []*cli.Command{
			serveCommand(),
			generateCommand(),
			showCommand(),
			datesCommand(),
			deleteCommand(),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
