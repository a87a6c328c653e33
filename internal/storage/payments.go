package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/chanceofrain/spotifam/internal/models"
)

type PaymentRepo struct {
	db *sqlx.DB
}

// Create records a payment attempt for an order. The paying user is taken
// from the order row.
func (r *PaymentRepo) Create(ctx context.Context, orderID int64, amountRub int, provider string, status models.PaymentStatus) (*models.Payment, error) {
	const q = `
		INSERT INTO payments (order_id, user_id, amount_rub, provider, status)
		SELECT o.id, o.user_id, $2, $3, $4 FROM orders o WHERE o.id = $1
		RETURNING *`
	var p models.Payment
	err := r.db.GetContext(ctx, &p, q, orderID, amountRub, provider, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return &p, nil
}

// LatestByOrder returns the most recent payment attempt for an order.
func (r *PaymentRepo) LatestByOrder(ctx context.Context, orderID int64) (*models.Payment, error) {
	var p models.Payment
	err := r.db.GetContext(ctx, &p, `
		SELECT * FROM payments WHERE order_id = $1
		ORDER BY created_at DESC LIMIT 1`, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest payment: %w", err)
	}
	return &p, nil
}

// SetStatus updates a payment record's state, stamping paid_at on completion.
func (r *PaymentRepo) SetStatus(ctx context.Context, id int64, status models.PaymentStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payments SET status = $2,
			paid_at = CASE WHEN $2 = 'completed' THEN now() ELSE paid_at END,
			updated_at = now()
		WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set payment status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// PaymentRow joins a payment with its order's public ID for list views.
type PaymentRow struct {
	models.Payment
	OrderPublicID string `db:"order_public_id"`
}

// List returns a page of payments, newest first, with the total count.
func (r *PaymentRepo) List(ctx context.Context, limit, offset int) ([]PaymentRow, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM payments`); err != nil {
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}
	var rows []PaymentRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT p.*, o.public_id AS order_public_id
		FROM payments p
		JOIN orders o ON o.id = p.order_id
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}
	return rows, total, nil
}
