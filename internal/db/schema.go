package db

import (
	"context"
	"database/sql"
	"fmt"
)

// EnsureSettingsSchema creates the key/blob table used by settings.PGStore.
func EnsureSettingsSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS settings (
			key        TEXT PRIMARY KEY,
			blob       TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("create settings table: %w", err)
	}
	return nil
}
