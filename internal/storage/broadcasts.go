package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/chanceofrain/spotifam/internal/models"
)

type BroadcastRepo struct {
	db *sqlx.DB
}

// Create records a broadcast job in the pending state. createdBy is the
// console account that submitted it, empty when unknown.
func (r *BroadcastRepo) Create(ctx context.Context, text, target, createdBy string) (*models.BroadcastMessage, error) {
	const q = `
		INSERT INTO broadcast_messages (text, target, status, created_by)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING *`
	var b models.BroadcastMessage
	if err := r.db.GetContext(ctx, &b, q, text, target, models.BroadcastDraft, createdBy); err != nil {
		return nil, fmt.Errorf("create broadcast: %w", err)
	}
	return &b, nil
}

// MarkSending flips the job to the in-progress state.
func (r *BroadcastRepo) MarkSending(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE broadcast_messages SET status = $2 WHERE id = $1`,
		id, models.BroadcastSending)
	if err != nil {
		return fmt.Errorf("mark sending: %w", err)
	}
	return nil
}

// Finish records delivery counters and the final status.
func (r *BroadcastRepo) Finish(ctx context.Context, id int64, status models.BroadcastStatus, sent, failed int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE broadcast_messages
		SET status = $2, sent_count = $3, fail_count = $4, sent_at = now()
		WHERE id = $1`, id, status, sent, failed)
	if err != nil {
		return fmt.Errorf("finish broadcast: %w", err)
	}
	return nil
}

// Recent returns the latest broadcast jobs for the console history view.
func (r *BroadcastRepo) Recent(ctx context.Context, limit int) ([]models.BroadcastMessage, error) {
	var jobs []models.BroadcastMessage
	err := r.db.SelectContext(ctx, &jobs, `
		SELECT * FROM broadcast_messages
		ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent broadcasts: %w", err)
	}
	return jobs, nil
}
