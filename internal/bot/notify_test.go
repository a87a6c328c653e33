package bot

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/chanceofrain/spotifam/internal/models"
)

func TestOrderPaidTextCarriesFullOrderDetail(t *testing.T) {
	o := &models.Order{
		Public:       "ORDER_00001",
		AmountRub:    370,
		SpotifyLogin: sql.NullString{String: "user@mail.com", Valid: true},
		PaymentURL:   sql.NullString{String: "https://pay.example/1", Valid: true},
	}
	user := &models.User{TelegramID: 777, Username: sql.NullString{String: "buyer", Valid: true}}

	text := orderPaidText(o, user)
	for _, want := range []string{"ORDER_00001", "370", "user@mail.com", "https://pay.example/1", "@buyer", "777"} {
		if !strings.Contains(text, want) {
			t.Errorf("orderPaidText missing %q in %q", want, text)
		}
	}
}

func TestOrderAwaitingPaymentText(t *testing.T) {
	o := &models.Order{
		Public:       "ORDER_00002",
		AmountRub:    150,
		SpotifyLogin: sql.NullString{String: "slot@mail.com", Valid: true},
		PaymentURL:   sql.NullString{String: "https://pay.example/2", Valid: true},
	}
	plan := &models.SubscriptionPlan{Name: "1 month"}

	text := orderAwaitingPaymentText(o, plan, nil)
	for _, want := range []string{"ORDER_00002", "1 month", "150", "slot@mail.com", "https://pay.example/2", "unknown"} {
		if !strings.Contains(text, want) {
			t.Errorf("orderAwaitingPaymentText missing %q in %q", want, text)
		}
	}
}
