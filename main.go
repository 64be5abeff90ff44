package main

import (
	"context"
	"os"

	"github.com/dailysync/upsc/pkg/cli"
)

func main() {
	ctx := context.Background()
	if err := cli.Run(ctx, os.Args); err != nil {
		os.Exit(err.Code)
	}
}
