package db

import (
	"context"
	"database/sql"
	"fmt"
)

// LabelStore keeps the localized names of light groups for one profile.
// It satisfies lights.LabelStore.
type LabelStore struct {
	db        *DB
	profileID int64
}

// Labels returns the label store of the given profile.
func (db *DB) Labels(profileID int64) *LabelStore {
	return &LabelStore{db: db, profileID: profileID}
}

// List returns every stored name keyed by group ID.
func (s *LabelStore) List(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT group_id, name FROM group_labels WHERE profile_id = ?
	`, s.profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group labels: %w", err)
	}
	defer func() { _ = rows.Close() }()

	labels := make(map[string]string)
	for rows.Next() {
		var groupID, name string
		if err := rows.Scan(&groupID, &name); err != nil {
			return nil, err
		}
		labels[groupID] = name
	}
	return labels, rows.Err()
}

// Set stores name for groupID, replacing any previous name.
func (s *LabelStore) Set(ctx context.Context, groupID, name string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO group_labels (profile_id, group_id, name)
		VALUES (?, ?, ?)
		ON CONFLICT (profile_id, group_id)
		DO UPDATE SET name = excluded.name, updated_at = datetime('now')
	`, s.profileID, groupID, name)
	if err != nil {
		return fmt.Errorf("failed to store group label: %w", err)
	}
	return nil
}

// Seed stores the given names for groups that have none yet.
func (s *LabelStore) Seed(ctx context.Context, names map[string]string) error {
	if len(names) == 0 {
		return nil
	}
	return s.db.Tx(ctx, func(tx *sql.Tx) error {
		for groupID, name := range names {
			_, err := tx.ExecContext(ctx, `
				INSERT OR IGNORE INTO group_labels (profile_id, group_id, name)
				VALUES (?, ?, ?)
			`, s.profileID, groupID, name)
			if err != nil {
				return fmt.Errorf("failed to seed group label %s: %w", groupID, err)
			}
		}
		return nil
	})
}
