package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/chanceofrain/spotifam/internal/models"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("not found")

type UserRepo struct {
	db *sqlx.DB
}

// Upsert inserts the user on first contact and refreshes profile fields and
// last_activity on every later one.
func (r *UserRepo) Upsert(ctx context.Context, telegramID int64, username, firstName, lastName string) (*models.User, error) {
	const q = `
		INSERT INTO users (telegram_id, username, first_name, last_name, last_activity)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), now())
		ON CONFLICT (telegram_id) DO UPDATE SET
			username = NULLIF($2, ''),
			first_name = NULLIF($3, ''),
			last_name = NULLIF($4, ''),
			updated_at = now(),
			last_activity = now()
		RETURNING *`
	var u models.User
	if err := r.db.GetContext(ctx, &u, q, telegramID, username, firstName, lastName); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return &u, nil
}

// ByTelegramID looks a user up by Telegram account ID.
func (r *UserRepo) ByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	var u models.User
	err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE telegram_id = $1`, telegramID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}
	return &u, nil
}

// ByID looks a user up by primary key.
func (r *UserRepo) ByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// List returns a page of users ordered by registration, newest first.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := r.db.SelectContext(ctx, &users,
		`SELECT * FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Count returns the total number of users.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// CountActiveSince counts users active at or after t.
func (r *UserRepo) CountActiveSince(ctx context.Context, t time.Time) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM users WHERE last_activity >= $1`, t)
	if err != nil {
		return 0, fmt.Errorf("count active users: %w", err)
	}
	return n, nil
}

// SetBanned flips the ban flag. Unbanning clears any stored reason.
func (r *UserRepo) SetBanned(ctx context.Context, id int64, banned bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_banned = $2,
			ban_reason = CASE WHEN $2 THEN ban_reason ELSE NULL END,
			updated_at = now()
		 WHERE id = $1`, id, banned)
	if err != nil {
		return fmt.Errorf("set banned: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchActivity bumps last_activity for a batch of Telegram IDs.
func (r *UserRepo) TouchActivity(ctx context.Context, telegramIDs []int64) error {
	if len(telegramIDs) == 0 {
		return nil
	}
	q, args, err := sqlx.In(
		`UPDATE users SET last_activity = now() WHERE telegram_id IN (?)`, telegramIDs)
	if err != nil {
		return fmt.Errorf("touch activity: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(q), args...); err != nil {
		return fmt.Errorf("touch activity: %w", err)
	}
	return nil
}

// RecipientIDs returns Telegram chat IDs matching a broadcast target filter.
// Banned users are always excluded.
func (r *UserRepo) RecipientIDs(ctx context.Context, target string) ([]int64, error) {
	q := `SELECT telegram_id FROM users WHERE NOT is_banned`
	var args []any
	if target == models.BroadcastTargetActive {
		q += ` AND last_activity >= $1`
		args = append(args, time.Now().AddDate(0, 0, -7))
	}
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, q, args...); err != nil {
		return nil, fmt.Errorf("select recipients: %w", err)
	}
	return ids, nil
}
