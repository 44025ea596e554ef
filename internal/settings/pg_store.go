package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGStore keeps blobs in the settings table created by db.EnsureSettingsSchema.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Get(ctx context.Context, key string) (string, bool, error) {
	var blob string
	err := s.db.QueryRowContext(ctx, `
		SELECT blob
		FROM settings
		WHERE key = $1
	`, key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select settings: %w", err)
	}
	return blob, true, nil
}

func (s *PGStore) Put(ctx context.Context, key, blob string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, blob, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET blob = EXCLUDED.blob, updated_at = NOW()
	`, key, blob)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
