package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/urmzd/huemcp/pkg/config"
	"github.com/urmzd/huemcp/pkg/db"
	"github.com/urmzd/huemcp/pkg/hue"
	"github.com/urmzd/huemcp/pkg/lights"
	"github.com/urmzd/huemcp/pkg/schema"
)

// simulatedLabels are the Swedish names of the simulator's groups
var simulatedLabels = map[string]string{
	"1": "vardagsrum",
	"2": "köksbord",
}

// App is the wiring shared by the MCP and REST binaries.
type App struct {
	Config    *config.Config
	DB        *db.DB
	Stored    *db.Config
	Bridge    hue.Bridge
	Service   *lights.Service
	Validator *schema.Validator
}

// Open prepares the database and the bridge for cfg.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	log.Info().Str("path", database.Path()).Msg("Database opened")

	a := &App{Config: cfg, DB: database, Validator: schema.NewValidator()}
	if err := a.init(ctx); err != nil {
		_ = database.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	if err := a.DB.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	needsBootstrap, err := a.DB.NeedsBootstrap(ctx)
	if err != nil {
		return fmt.Errorf("failed to check bootstrap status: %w", err)
	}
	if needsBootstrap {
		log.Info().Msg("First run detected, bootstrapping database...")
		if err := a.DB.Bootstrap(ctx); err != nil {
			return fmt.Errorf("failed to bootstrap database: %w", err)
		}
	}

	if name := a.Config.Database.Profile; name != "" {
		a.Stored, err = a.DB.SelectProfile(ctx, name)
	} else {
		a.Stored, err = a.DB.ActiveConfig(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	labels := a.DB.Labels(a.Stored.Profile.ID)

	if a.Config.Simulate {
		if err := labels.Seed(ctx, simulatedLabels); err != nil {
			return err
		}
		a.Bridge = hue.NewSimulator()
		log.Warn().Msg("Using simulated bridge")
	} else {
		client, err := hue.NewClient(hue.Identity{
			Address:  a.Config.Bridge.Address,
			Username: a.Config.Bridge.Username,
		}, hue.Options{
			Timeout:   a.Config.Bridge.Timeout.Duration(),
			RateLimit: a.Config.Bridge.RateLimit,
		})
		if err != nil {
			return fmt.Errorf("failed to create bridge client: %w", err)
		}
		a.Bridge = client
		log.Info().
			Str("bridge", a.Config.Bridge.Address).
			Dur("timeout", a.Config.Bridge.Timeout.Duration()).
			Float64("rate_limit", a.Config.Bridge.RateLimit).
			Msg("Bridge client configured")
	}

	a.Service = lights.NewService(a.Bridge, labels)

	log.Info().
		Str("profile", a.Stored.Profile.Name).
		Msg("Configuration loaded")
	return nil
}

// APIAddress returns the REST listen address: the configured override or
// the address stored in the active profile.
func (a *App) APIAddress() string {
	if a.Config.API.Address != "" {
		return a.Config.API.Address
	}
	return a.Stored.APIAddress()
}

// CheckBridge logs whether the bridge answers. An unreachable bridge is not
// fatal; calls report it per group.
func (a *App) CheckBridge(ctx context.Context) error {
	err := a.Bridge.Ping(ctx)
	switch {
	case err == nil:
		log.Info().Msg("Bridge reachable")
	case errors.Is(err, hue.ErrRejected):
		log.Error().Err(err).Msg("Bridge refused the credential")
	default:
		log.Warn().Err(err).Str("kind", hue.Kind(err)).Msg("Bridge not reachable yet")
	}
	return err
}

// Close closes the database.
func (a *App) Close() error {
	return a.DB.Close()
}
