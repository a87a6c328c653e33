package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/chanceofrain/spotifam/internal/models"
)

type AdminRepo struct {
	db *sqlx.DB
}

// ByUsername fetches an active console operator account.
func (r *AdminRepo) ByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var a models.Admin
	err := r.db.GetContext(ctx, &a,
		`SELECT * FROM admins WHERE username = $1 AND is_active`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &a, nil
}

// Create inserts an operator account with an already hashed password.
// Existing usernames are left untouched.
func (r *AdminRepo) Create(ctx context.Context, username, passwordHash string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO admins (username, password_hash) VALUES ($1, $2)
		 ON CONFLICT (username) DO NOTHING`,
		username, passwordHash)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}

// TouchLogin stamps the last successful console login.
func (r *AdminRepo) TouchLogin(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE admins SET last_login = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("touch admin login: %w", err)
	}
	return nil
}
