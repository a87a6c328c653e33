package models

import (
	"database/sql"
	"time"
)

// OrderStatus tracks an order through its lifecycle.
type OrderStatus string

const (
	OrderCreated         OrderStatus = "created"
	OrderAwaitingPayment OrderStatus = "awaiting_payment"
	OrderPaid            OrderStatus = "paid"
	OrderProcessing      OrderStatus = "processing"
	OrderCompleted       OrderStatus = "completed"
	OrderCancelled       OrderStatus = "cancelled"
	OrderRefunded        OrderStatus = "refunded"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderCreated, OrderAwaitingPayment, OrderPaid, OrderProcessing,
		OrderCompleted, OrderCancelled, OrderRefunded:
		return true
	}
	return false
}

// PaymentStatus tracks the state of a payment record.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// BroadcastStatus tracks a broadcast job.
type BroadcastStatus string

const (
	BroadcastDraft     BroadcastStatus = "draft"
	BroadcastSending   BroadcastStatus = "sending"
	BroadcastCompleted BroadcastStatus = "completed"
	BroadcastFailed    BroadcastStatus = "failed"
)

// User is a Telegram account that interacted with the bot.
type User struct {
	ID           int64          `db:"id"`
	TelegramID   int64          `db:"telegram_id"`
	Username     sql.NullString `db:"username"`
	FirstName    sql.NullString `db:"first_name"`
	LastName     sql.NullString `db:"last_name"`
	Phone        sql.NullString `db:"phone"`
	Language     string         `db:"language"`
	Role         string         `db:"role"`
	IsActive     bool           `db:"is_active"`
	IsBanned     bool           `db:"is_banned"`
	BanReason    sql.NullString `db:"ban_reason"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	LastActivity time.Time      `db:"last_activity"`
}

// DisplayName returns the most specific non-empty name for the user.
func (u *User) DisplayName() string {
	if u.Username.Valid && u.Username.String != "" {
		return "@" + u.Username.String
	}
	if u.FirstName.Valid && u.FirstName.String != "" {
		return u.FirstName.String
	}
	return "user"
}

// Admin is a console operator account.
type Admin struct {
	ID           int64          `db:"id"`
	Username     string         `db:"username"`
	Email        sql.NullString `db:"email"`
	PasswordHash string         `db:"password_hash"`
	IsActive     bool           `db:"is_active"`
	LastLogin    sql.NullTime   `db:"last_login"`
	CreatedAt    time.Time      `db:"created_at"`
}

// SubscriptionPlan is a purchasable subscription duration.
type SubscriptionPlan struct {
	ID             int64  `db:"id"`
	Code           string `db:"code"`
	Name           string `db:"name"`
	DurationMonths int    `db:"duration_months"`
	// PriceRub is the plan price in whole rubles.
	PriceRub int  `db:"price_rub"`
	IsActive bool `db:"is_active"`
}

// Order is a purchase of one subscription plan.
// Spotify credentials are stored in plain text. They must be encrypted at
// rest before any production deployment.
type Order struct {
	ID     int64  `db:"id"`
	Public string `db:"public_id"`
	UserID int64  `db:"user_id"`
	PlanID int64  `db:"plan_id"`
	// AmountRub is a snapshot of the plan price at order time.
	AmountRub       int            `db:"amount_rub"`
	Status          OrderStatus    `db:"status"`
	SpotifyLogin    sql.NullString `db:"spotify_login"`
	SpotifyPassword sql.NullString `db:"spotify_password"`
	PaymentURL      sql.NullString `db:"payment_url"`
	ExternalRef     sql.NullString `db:"external_ref"`
	Notes           sql.NullString `db:"notes"`
	AdminNotes      sql.NullString `db:"admin_notes"`
	CompletedAt     sql.NullTime   `db:"completed_at"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

// Payment is a payment attempt attached to an order.
type Payment struct {
	ID         int64          `db:"id"`
	OrderID    int64          `db:"order_id"`
	UserID     int64          `db:"user_id"`
	AmountRub  int            `db:"amount_rub"`
	Currency   string         `db:"currency"`
	Status     PaymentStatus  `db:"status"`
	Provider   string         `db:"provider"`
	Method     sql.NullString `db:"method"`
	ExternalID sql.NullString `db:"external_id"`
	PaidAt     sql.NullTime   `db:"paid_at"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

// BroadcastMessage is one mass message job sent from the admin console.
type BroadcastMessage struct {
	ID        int64           `db:"id"`
	Title     sql.NullString  `db:"title"`
	Text      string          `db:"text"`
	Target    string          `db:"target"`
	Status    BroadcastStatus `db:"status"`
	SentCount int             `db:"sent_count"`
	FailCount int             `db:"fail_count"`
	CreatedBy sql.NullString  `db:"created_by"`
	SentAt    sql.NullTime    `db:"sent_at"`
	CreatedAt time.Time       `db:"created_at"`
}

// Broadcast target filters.
const (
	BroadcastTargetAll    = "all"
	BroadcastTargetActive = "active_7d"
)

// SystemSetting is one key/value configuration row editable from the console.
type SystemSetting struct {
	Key         string         `db:"key"`
	Value       string         `db:"value"`
	Description sql.NullString `db:"description"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// Well-known settings keys.
const (
	SettingWelcomeMessage  = "bot_welcome_message"
	SettingSellerID        = "digiseller_seller_id"
	SettingSecretKey       = "digiseller_secret_key"
	SettingSupportUsername = "support_username"
)
