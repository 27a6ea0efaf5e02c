package config

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// Flag names
const (
	FlagConfig    = "config"
	FlagBridge    = "bridge"
	FlagUsername  = "username"
	FlagTimeout   = "timeout"
	FlagRateLimit = "rate-limit"
	FlagDB        = "db"
	FlagProfile   = "profile"
	FlagLogLevel  = "log-level"
	FlagSimulate  = "simulate"
	FlagListen    = "listen"
)

// Flags returns the command-line flags shared by every binary. Each flag can
// also be set through its environment variable.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FlagConfig,
			Aliases: []string{"c"},
			Usage:   "path to YAML config file",
			Sources: cli.EnvVars("HUEMCP_CONFIG"),
		},
		&cli.StringFlag{
			Name:    FlagBridge,
			Usage:   "Hue bridge address (host or host:port)",
			Sources: cli.EnvVars("HUE_BRIDGE_ADDRESS"),
		},
		&cli.StringFlag{
			Name:    FlagUsername,
			Usage:   "Hue bridge application key",
			Sources: cli.EnvVars("HUE_BRIDGE_USERNAME"),
		},
		&cli.DurationFlag{
			Name:    FlagTimeout,
			Usage:   "per-call bridge timeout",
			Value:   DefaultTimeout,
			Sources: cli.EnvVars("HUE_BRIDGE_TIMEOUT"),
		},
		&cli.FloatFlag{
			Name:    FlagRateLimit,
			Usage:   "maximum bridge requests per second",
			Value:   DefaultRateLimit,
			Sources: cli.EnvVars("HUE_BRIDGE_RATE_LIMIT"),
		},
		&cli.StringFlag{
			Name:    FlagDB,
			Usage:   "path to database file (default: ~/.config/huemcp/huemcp.db)",
			Sources: cli.EnvVars("HUEMCP_DB"),
		},
		&cli.StringFlag{
			Name:    FlagProfile,
			Usage:   "stored profile to use, created if missing (default: active profile)",
			Sources: cli.EnvVars("HUEMCP_PROFILE"),
		},
		&cli.StringFlag{
			Name:    FlagLogLevel,
			Usage:   "log level (debug, info, warn, error)",
			Value:   DefaultLogLevel,
			Sources: cli.EnvVars("HUEMCP_LOG_LEVEL"),
		},
		&cli.BoolFlag{
			Name:    FlagSimulate,
			Usage:   "use an in-memory bridge instead of a real one",
			Sources: cli.EnvVars("HUEMCP_SIMULATE"),
		},
		&cli.StringFlag{
			Name:    FlagListen,
			Usage:   "REST API listen address (default: stored profile address)",
			Sources: cli.EnvVars("HUEMCP_LISTEN"),
		},
	}
}

// FromCommand builds the configuration for cmd: the config file if one is
// given, then every flag or environment variable that was explicitly set.
func FromCommand(cmd *cli.Command) (*Config, error) {
	cfg := Default()
	if path := cmd.String(FlagConfig); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.IsSet(FlagBridge) {
		cfg.Bridge.Address = cmd.String(FlagBridge)
	}
	if cmd.IsSet(FlagUsername) {
		cfg.Bridge.Username = cmd.String(FlagUsername)
	}
	if cmd.IsSet(FlagTimeout) {
		cfg.Bridge.Timeout = Duration(cmd.Duration(FlagTimeout))
	}
	if cmd.IsSet(FlagRateLimit) {
		cfg.Bridge.RateLimit = cmd.Float(FlagRateLimit)
	}
	if cmd.IsSet(FlagDB) {
		cfg.Database.Path = cmd.String(FlagDB)
	}
	if cmd.IsSet(FlagProfile) {
		cfg.Database.Profile = cmd.String(FlagProfile)
	}
	if cmd.IsSet(FlagLogLevel) {
		cfg.Log.Level = cmd.String(FlagLogLevel)
	}
	if cmd.IsSet(FlagSimulate) {
		cfg.Simulate = cmd.Bool(FlagSimulate)
	}
	if cmd.IsSet(FlagListen) {
		cfg.API.Address = cmd.String(FlagListen)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Action adapts a function taking the parsed configuration into a cli action.
func Action(run func(ctx context.Context, cfg *Config) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := FromCommand(cmd)
		if err != nil {
			return err
		}
		if err := SetupLogging(cfg.Log.Level); err != nil {
			return err
		}
		return run(ctx, cfg)
	}
}
