// Package seed populates reference data on startup. Every step is
// idempotent so restarts never duplicate rows or clobber operator edits.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/chanceofrain/spotifam/core/logger"
	"github.com/chanceofrain/spotifam/internal/admin"
	"github.com/chanceofrain/spotifam/internal/models"
	"github.com/chanceofrain/spotifam/internal/storage"
)

// Default console account. The password must be changed after first login.
const (
	defaultAdminUser     = "admin"
	defaultAdminPassword = "admin123"
)

var defaultPlans = []models.SubscriptionPlan{
	{Code: "1_month", Name: "1 month", DurationMonths: 1, PriceRub: 150, IsActive: true},
	{Code: "3_months", Name: "3 months", DurationMonths: 3, PriceRub: 370, IsActive: true},
	{Code: "6_months", Name: "6 months", DurationMonths: 6, PriceRub: 690, IsActive: true},
	{Code: "12_months", Name: "12 months", DurationMonths: 12, PriceRub: 1300, IsActive: true},
}

// defaultSettings maps each settings key to its console description. Values
// start empty and are filled in by the operator.
var defaultSettings = map[string]string{
	models.SettingWelcomeMessage:  "Greeting sent on /start; empty uses the built-in text",
	models.SettingSellerID:        "Digiseller seller ID for payment links",
	models.SettingSecretKey:       "Digiseller secret key",
	models.SettingSupportUsername: "Telegram username shown on the support screen",
}

// Run seeds plans, the default console account and settings keys.
func Run(db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store := storage.New(db)

	for _, p := range defaultPlans {
		if err := store.Plans.UpsertByCode(ctx, p); err != nil {
			return err
		}
	}

	hash, err := admin.HashPassword(defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hash default admin password: %w", err)
	}
	if err := store.Admins.Create(ctx, defaultAdminUser, hash); err != nil {
		return err
	}

	for key, description := range defaultSettings {
		if err := store.Settings.SetIfAbsent(ctx, key, "", description); err != nil {
			return err
		}
	}

	logger.SEED.Info("seed.done",
		"plans", len(defaultPlans),
		"settings", len(defaultSettings),
	)
	return nil
}
