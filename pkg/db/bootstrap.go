package db

import (
	"context"
	"fmt"
)

// Defaults written on first run.
const (
	DefaultProfile = "default"
	DefaultAPIHost = "127.0.0.1"
	DefaultAPIPort = 8080
)

// Bootstrap creates the default profile and API address when the database
// has no profile yet. It is a no-op afterwards.
func (db *DB) Bootstrap(ctx context.Context) error {
	needs, err := db.NeedsBootstrap(ctx)
	if err != nil {
		return fmt.Errorf("failed to check profiles: %w", err)
	}
	if !needs {
		return nil
	}

	if _, err := db.createProfile(ctx, DefaultProfile, true); err != nil {
		return fmt.Errorf("failed to create default profile: %w", err)
	}
	return nil
}

// createProfile stores a profile together with the default API address.
func (db *DB) createProfile(ctx context.Context, name string, active bool) (*Profile, error) {
	profile := &Profile{Name: name, IsActive: active}
	if err := db.Profiles().Create(ctx, profile); err != nil {
		return nil, err
	}

	err := db.APIServers().Create(ctx, &APIServer{
		ProfileID: profile.ID,
		Host:      DefaultAPIHost,
		Port:      DefaultAPIPort,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create API server: %w", err)
	}
	return profile, nil
}

// NeedsBootstrap returns true if the database needs initial setup.
func (db *DB) NeedsBootstrap(ctx context.Context) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
