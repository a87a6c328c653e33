// Package payment builds payment links for orders.
package payment

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrNotConfigured is returned when provider credentials are missing.
var ErrNotConfigured = errors.New("payment provider is not configured")

// fallbackBase is the placeholder gateway used when no provider credentials
// are configured, so the purchase flow stays testable end to end.
const fallbackBase = "https://payment-gateway.example.com/pay"

// URLBuilder constructs Digiseller payment links.
type URLBuilder struct {
	SellerID  string
	SecretKey string
	BaseURL   string
}

// Build returns the provider payment URL for an order, or ErrNotConfigured
// when seller credentials are absent.
func (b URLBuilder) Build(orderPublicID string, amountRub int) (string, error) {
	if b.SellerID == "" || b.SecretKey == "" {
		return "", ErrNotConfigured
	}
	base := b.BaseURL
	if base == "" {
		base = "https://shop.digiseller.ru/xml/check_pay.asp"
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse payment base url: %w", err)
	}
	q := u.Query()
	q.Set("id_d", b.SellerID)
	q.Set("order_id", orderPublicID)
	q.Set("amount", fmt.Sprintf("%d", amountRub))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FallbackURL returns the placeholder payment link used when Build fails.
func FallbackURL(orderPublicID string, amountRub int) string {
	return fmt.Sprintf("%s?order_id=%s&amount=%d", fallbackBase, orderPublicID, amountRub)
}
