package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/askele/borealis/cmd/borealis/serve"
	"github.com/askele/borealis/cmd/borealis/user"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "borealis",
		Usage: "Chase the northern lights together!",
		Commands: []*cli.Command{
			serve.Cmd(),
			user.Cmd(),
		},
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		log.Error().Err(err).Msg("Application failed")
	}
}
