package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/efisher/refkey/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SettingsStore = (*SettingsRepo)(nil)

// SettingsRepo is the SQLite implementation of the SettingsStore port. It
// persists the user's message template across sessions.
type SettingsRepo struct {
	db *DB
}

// NewSettingsRepo creates a SettingsRepo backed by the given DB.
func NewSettingsRepo(db *DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get retrieves the value stored under name. Returns ErrSettingNotFound if
// the setting was never stored or has been deleted.
func (r *SettingsRepo) Get(ctx context.Context, name string) (string, error) {
	const query = `SELECT value FROM settings WHERE name = ?`

	var value string
	err := r.db.Reader.QueryRowContext(ctx, query, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", driven.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", name, err)
	}

	return value, nil
}

// Set stores or replaces the value under name.
func (r *SettingsRepo) Set(ctx context.Context, name, value string) error {
	const query = `
		INSERT INTO settings (name, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.Writer.ExecContext(ctx, query, name, value); err != nil {
		return fmt.Errorf("set setting %q: %w", name, err)
	}

	return nil
}

// Delete removes the setting under name. Deleting an absent setting is a
// no-op.
func (r *SettingsRepo) Delete(ctx context.Context, name string) error {
	if _, err := r.db.Writer.ExecContext(ctx, `DELETE FROM settings WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete setting %q: %w", name, err)
	}
	return nil
}
