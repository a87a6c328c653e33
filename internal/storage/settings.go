package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/chanceofrain/spotifam/internal/models"
)

type SettingsRepo struct {
	db *sqlx.DB
}

// Get returns the value for key, or "" with ErrNotFound when absent.
func (r *SettingsRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value,
		`SELECT value FROM system_settings WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, nil
}

// GetDefault returns the value for key, or def when the key is missing or
// holds an empty value. Seeded keys start empty, so a fresh install falls
// back to the built-in text until the operator fills them in.
func (r *SettingsRepo) GetDefault(ctx context.Context, key, def string) string {
	v, err := r.Get(ctx, key)
	if err != nil {
		return def
	}
	return orDefault(v, def)
}

func orDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

// Set writes a key/value pair, inserting or overwriting as needed.
func (r *SettingsRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO system_settings (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// SetIfAbsent seeds a default value and description without overwriting
// operator edits.
func (r *SettingsRepo) SetIfAbsent(ctx context.Context, key, value, description string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO system_settings (key, value, description)
		VALUES ($1, $2, NULLIF($3, ''))
		ON CONFLICT (key) DO NOTHING`, key, value, description)
	if err != nil {
		return fmt.Errorf("seed setting %s: %w", key, err)
	}
	return nil
}

// All returns every settings row ordered by key.
func (r *SettingsRepo) All(ctx context.Context) ([]models.SystemSetting, error) {
	var rows []models.SystemSetting
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM system_settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return rows, nil
}
