package bot

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/chanceofrain/spotifam/internal/models"
	"github.com/chanceofrain/spotifam/internal/storage"
)

func TestPlanButtonLabel(t *testing.T) {
	p := models.SubscriptionPlan{Name: "3 months", PriceRub: 370}
	if got, want := planButtonLabel(p), "3 months — 370 ₽"; got != want {
		t.Fatalf("planButtonLabel = %q, want %q", got, want)
	}
}

func TestPaymentTextCarriesOrderAndLink(t *testing.T) {
	o := &models.Order{
		Public:     "ORDER_00007",
		AmountRub:  690,
		PaymentURL: sql.NullString{String: "https://pay.example/7", Valid: true},
	}
	text := paymentText(o)
	for _, want := range []string{"ORDER_00007", "690", "https://pay.example/7"} {
		if !strings.Contains(text, want) {
			t.Errorf("paymentText missing %q in %q", want, text)
		}
	}
}

func TestOrdersListText(t *testing.T) {
	if got := ordersListText(nil); !strings.Contains(got, "no orders") {
		t.Fatalf("empty list text = %q", got)
	}
	orders := []models.Order{
		{Public: "ORDER_00001", AmountRub: 150, Status: models.OrderCompleted},
		{Public: "ORDER_00002", AmountRub: 370, Status: models.OrderAwaitingPayment},
	}
	got := ordersListText(orders)
	for _, want := range []string{"ORDER_00001", "completed", "ORDER_00002", "awaiting payment"} {
		if !strings.Contains(got, want) {
			t.Errorf("ordersListText missing %q in %q", want, got)
		}
	}
}

func TestRecentOrdersText(t *testing.T) {
	if got := recentOrdersText(nil); !strings.Contains(got, "No orders") {
		t.Fatalf("empty list text = %q", got)
	}
	rows := []storage.OrderRow{
		{
			Order:    models.Order{Public: "ORDER_00003", AmountRub: 370, Status: models.OrderPaid},
			Username: sql.NullString{String: "buyer", Valid: true},
			PlanName: "3 months",
		},
	}
	got := recentOrdersText(rows)
	for _, want := range []string{"ORDER_00003", "3 months", "370", "paid", "@buyer"} {
		if !strings.Contains(got, want) {
			t.Errorf("recentOrdersText missing %q in %q", want, got)
		}
	}
}

func TestSupportText(t *testing.T) {
	if got := supportText("@helper"); !strings.Contains(got, "@helper") {
		t.Fatalf("supportText = %q", got)
	}
	if got := supportText(""); !strings.Contains(got, "not configured") {
		t.Fatalf("supportText empty = %q", got)
	}
}
