package db

import (
	"context"
	"errors"
	"fmt"
)

var ErrNoActiveProfile = errors.New("no active profile found")

// Config is the runtime configuration stored in the database.
type Config struct {
	Profile   *Profile
	APIServer *APIServer
}

// APIAddress returns the API server listen address.
func (c *Config) APIAddress() string {
	if c.APIServer == nil {
		return (&APIServer{Host: DefaultAPIHost, Port: DefaultAPIPort}).Address()
	}
	return c.APIServer.Address()
}

// ActiveConfig loads the configuration of the active profile.
func (db *DB) ActiveConfig(ctx context.Context) (*Config, error) {
	profile, err := db.Profiles().GetActive(ctx)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, ErrNoActiveProfile
		}
		return nil, fmt.Errorf("failed to get active profile: %w", err)
	}

	config := &Config{Profile: profile}

	apiServer, err := db.APIServers().Get(ctx, profile.ID)
	if err != nil && !errors.Is(err, ErrAPIServerNotFound) {
		return nil, fmt.Errorf("failed to get API server config: %w", err)
	}
	config.APIServer = apiServer

	return config, nil
}

// SelectProfile makes the named profile active, creating it on first use,
// and returns its configuration.
func (db *DB) SelectProfile(ctx context.Context, name string) (*Config, error) {
	if name == "" {
		return nil, ErrProfileNotFound
	}

	profile, err := db.Profiles().GetByName(ctx, name)
	switch {
	case errors.Is(err, ErrProfileNotFound):
		if profile, err = db.createProfile(ctx, name, false); err != nil {
			return nil, fmt.Errorf("failed to create profile %q: %w", name, err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to get profile %q: %w", name, err)
	}

	if !profile.IsActive {
		if err := db.Profiles().SetActive(ctx, profile.ID); err != nil {
			return nil, fmt.Errorf("failed to activate profile %q: %w", name, err)
		}
	}
	return db.ActiveConfig(ctx)
}
