package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/chanceofrain/spotifam/internal/models"
)

type PlanRepo struct {
	db *sqlx.DB
}

// Active returns purchasable plans ordered by duration.
func (r *PlanRepo) Active(ctx context.Context) ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	err := r.db.SelectContext(ctx, &plans,
		`SELECT * FROM subscription_plans WHERE is_active ORDER BY duration_months`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

// ByID fetches one plan regardless of its active flag.
func (r *PlanRepo) ByID(ctx context.Context, id int64) (*models.SubscriptionPlan, error) {
	var p models.SubscriptionPlan
	err := r.db.GetContext(ctx, &p, `SELECT * FROM subscription_plans WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return &p, nil
}

// UpsertByCode seeds or refreshes a plan identified by its code.
func (r *PlanRepo) UpsertByCode(ctx context.Context, p models.SubscriptionPlan) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subscription_plans (code, name, duration_months, price_rub, is_active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			duration_months = EXCLUDED.duration_months,
			price_rub = EXCLUDED.price_rub,
			is_active = EXCLUDED.is_active`,
		p.Code, p.Name, p.DurationMonths, p.PriceRub, p.IsActive)
	if err != nil {
		return fmt.Errorf("upsert plan %s: %w", p.Code, err)
	}
	return nil
}
