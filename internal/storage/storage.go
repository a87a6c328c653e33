// Package storage contains the sqlx repositories over the Postgres schema.
package storage

import "github.com/jmoiron/sqlx"

// Store bundles all repositories over one connection pool.
type Store struct {
	Users      *UserRepo
	Admins     *AdminRepo
	Plans      *PlanRepo
	Orders     *OrderRepo
	Payments   *PaymentRepo
	Broadcasts *BroadcastRepo
	Settings   *SettingsRepo
}

func New(db *sqlx.DB) *Store {
	return &Store{
		Users:      &UserRepo{db: db},
		Admins:     &AdminRepo{db: db},
		Plans:      &PlanRepo{db: db},
		Orders:     &OrderRepo{db: db},
		Payments:   &PaymentRepo{db: db},
		Broadcasts: &BroadcastRepo{db: db},
		Settings:   &SettingsRepo{db: db},
	}
}
