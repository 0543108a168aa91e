package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetValue returns the stored value for key. A missing key is reported with
// found == false and a nil error.
func (s *Store) GetValue(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value,
		`SELECT value FROM "visa-flow".builder_values WHERE key = $1`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get value for key %q: %w", key, err)
	}
	return value, true, nil
}

// SetValue stores value under key, replacing any previous value.
func (s *Store) SetValue(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO "visa-flow".builder_values (key, value, updated_at)
         VALUES ($1, $2, (now() at time zone 'utc'))
         ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to set value for key %q: %w", key, err)
	}
	return nil
}

// DeleteValue removes key. Deleting a missing key is not an error.
func (s *Store) DeleteValue(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM "visa-flow".builder_values WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete value for key %q: %w", key, err)
	}
	return nil
}
