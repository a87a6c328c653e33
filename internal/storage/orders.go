package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/chanceofrain/spotifam/internal/models"
)

type OrderRepo struct {
	db *sqlx.DB
}

// MintOrderID formats the public order identifier from a sequence number.
func MintOrderID(seq int) string {
	return fmt.Sprintf("ORDER_%05d", seq)
}

// NextPublicID derives the next public order ID from the current row count.
// This is a single-writer scheme: the bot process is the only order creator,
// so count+1 cannot race with itself.
func (r *OrderRepo) NextPublicID(ctx context.Context) (string, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM orders`); err != nil {
		return "", fmt.Errorf("count orders: %w", err)
	}
	return MintOrderID(n + 1), nil
}

// Create inserts a new order in the created state.
func (r *OrderRepo) Create(ctx context.Context, publicID string, userID, planID int64, amountRub int) (*models.Order, error) {
	const q = `
		INSERT INTO orders (public_id, user_id, plan_id, amount_rub, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *`
	var o models.Order
	err := r.db.GetContext(ctx, &o, q, publicID, userID, planID, amountRub, models.OrderCreated)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &o, nil
}

// ByPublicID fetches an order by its public identifier.
func (r *OrderRepo) ByPublicID(ctx context.Context, publicID string) (*models.Order, error) {
	var o models.Order
	err := r.db.GetContext(ctx, &o, `SELECT * FROM orders WHERE public_id = $1`, publicID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// ByID fetches an order by primary key.
func (r *OrderRepo) ByID(ctx context.Context, id int64) (*models.Order, error) {
	var o models.Order
	err := r.db.GetContext(ctx, &o, `SELECT * FROM orders WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// SetCredentials stores the Spotify account pair and moves the order to
// awaiting_payment along with the generated payment link.
func (r *OrderRepo) SetCredentials(ctx context.Context, id int64, login, password, paymentURL string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET
			spotify_login = $2,
			spotify_password = $3,
			payment_url = $4,
			status = $5,
			updated_at = now()
		WHERE id = $1`,
		id, login, password, paymentURL, models.OrderAwaitingPayment)
	if err != nil {
		return fmt.Errorf("set credentials: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus overrides the order status without transition checks. The admin
// console relies on this to untangle orders by hand.
func (r *OrderRepo) SetStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $2,
			completed_at = CASE WHEN $2 = 'completed' THEN now() ELSE completed_at END,
			updated_at = now()
		WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set order status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListFilter narrows List results.
type ListFilter struct {
	Status models.OrderStatus
	// Search matches public_id, buyer username or first name, case-insensitive.
	Search string
	Limit  int
	Offset int
}

// OrderRow is an order joined with its buyer and plan for list views.
type OrderRow struct {
	models.Order
	TelegramID int64          `db:"telegram_id"`
	Username   sql.NullString `db:"username"`
	PlanName   string         `db:"plan_name"`
}

// List returns a page of orders, newest first.
func (r *OrderRepo) List(ctx context.Context, f ListFilter) ([]OrderRow, int, error) {
	where := []string{"TRUE"}
	args := []any{}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("o.status = $%d", len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		where = append(where,
			fmt.Sprintf("(o.public_id ILIKE $%d OR u.username ILIKE $%d OR u.first_name ILIKE $%d)",
				len(args), len(args), len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	countQ := `SELECT COUNT(*) FROM orders o JOIN users u ON u.id = o.user_id WHERE ` + cond
	if err := r.db.GetContext(ctx, &total, countQ, args...); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	q := fmt.Sprintf(`
		SELECT o.*, u.telegram_id, u.username, p.name AS plan_name
		FROM orders o
		JOIN users u ON u.id = o.user_id
		JOIN subscription_plans p ON p.id = o.plan_id
		WHERE %s
		ORDER BY o.created_at DESC
		LIMIT $%d OFFSET $%d`, cond, len(args)-1, len(args))

	var rows []OrderRow
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return rows, total, nil
}

// Recent returns the latest orders across all users with buyer and plan
// context attached.
func (r *OrderRepo) Recent(ctx context.Context, limit int) ([]OrderRow, error) {
	var rows []OrderRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT o.*, u.telegram_id, u.username, p.name AS plan_name
		FROM orders o
		JOIN users u ON u.id = o.user_id
		JOIN subscription_plans p ON p.id = o.plan_id
		ORDER BY o.created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}
	return rows, nil
}

// RecentByUser returns the user's latest orders for their order history view.
func (r *OrderRepo) RecentByUser(ctx context.Context, userID int64, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.SelectContext(ctx, &orders, `
		SELECT * FROM orders WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}
	return orders, nil
}

// CountByStatus returns order counts grouped by status.
func (r *OrderRepo) CountByStatus(ctx context.Context) (map[models.OrderStatus]int, error) {
	rows := []struct {
		Status models.OrderStatus `db:"status"`
		N      int                `db:"n"`
	}{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT status, COUNT(*) AS n FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	out := make(map[models.OrderStatus]int, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}

// DayStats aggregates orders and revenue created within [from, to).
// Revenue counts paid, processing and completed orders only.
func (r *OrderRepo) DayStats(ctx context.Context, from, to time.Time) (orders, revenueRub int, err error) {
	row := struct {
		Orders  int `db:"orders"`
		Revenue int `db:"revenue"`
	}{}
	err = r.db.GetContext(ctx, &row, `
		SELECT COUNT(*) AS orders,
		       COALESCE(SUM(amount_rub) FILTER (WHERE status IN ('paid', 'processing', 'completed')), 0) AS revenue
		FROM orders
		WHERE created_at >= $1 AND created_at < $2`, from, to)
	if err != nil {
		return 0, 0, fmt.Errorf("day stats: %w", err)
	}
	return row.Orders, row.Revenue, nil
}

// TotalRevenue sums amounts over paid, processing and completed orders.
func (r *OrderRepo) TotalRevenue(ctx context.Context) (int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(amount_rub), 0) FROM orders
		WHERE status IN ('paid', 'processing', 'completed')`)
	if err != nil {
		return 0, fmt.Errorf("total revenue: %w", err)
	}
	return total, nil
}
