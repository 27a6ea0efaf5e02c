package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/urmzd/huemcp/pkg/app"
	"github.com/urmzd/huemcp/pkg/config"
	huemcp "github.com/urmzd/huemcp/pkg/mcp"
)

func main() {
	// Logging must go to stderr, stdout is the MCP transport
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cmd := &cli.Command{
		Name:    "huemcp",
		Usage:   "control Philips Hue light groups over MCP (stdio)",
		Version: huemcp.Version,
		Writer:  os.Stderr,
		Flags:   config.Flags(),
		Action:  config.Action(run),
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("huemcp failed")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	a, err := app.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	_ = a.CheckBridge(ctx)

	server, err := huemcp.NewServer(a.Service, a.Validator)
	if err != nil {
		return err
	}

	log.Info().Int("tools", len(server.Registry().Tools())).Msg("Starting MCP server on stdio")
	return server.ServeStdio()
}
