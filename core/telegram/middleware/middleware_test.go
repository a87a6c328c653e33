package middleware

import (
	"testing"

	tele "gopkg.in/telebot.v4"

	"github.com/chanceofrain/spotifam/core/telegram/state"
)

// stubContext fakes the slice of tele.Context the middlewares touch.
// Everything else panics via the embedded nil interface.
type stubContext struct {
	tele.Context
	sender *tele.User
	sent   []string
}

func (c *stubContext) Sender() *tele.User { return c.sender }

func (c *stubContext) Update() tele.Update { return tele.Update{ID: 42} }

func (c *stubContext) Send(what interface{}, _ ...interface{}) error {
	if s, ok := what.(string); ok {
		c.sent = append(c.sent, s)
	}
	return nil
}

func TestAdminOnlyPassesAdminThrough(t *testing.T) {
	called := false
	h := AdminOnly(100)(func(c tele.Context) error {
		called = true
		return nil
	})

	c := &stubContext{sender: &tele.User{ID: 100}}
	if err := h(c); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("admin sender did not reach the handler")
	}
	if len(c.sent) != 0 {
		t.Fatalf("unexpected refusal sent: %v", c.sent)
	}
}

func TestAdminOnlyRefusesOthers(t *testing.T) {
	h := AdminOnly(100)(func(c tele.Context) error {
		t.Fatal("non-admin sender reached the handler")
		return nil
	})

	c := &stubContext{sender: &tele.User{ID: 200}}
	if err := h(c); err != nil {
		t.Fatal(err)
	}
	if len(c.sent) != 1 {
		t.Fatalf("want one refusal message, got %v", c.sent)
	}
}

func TestRequireStateGatesOnConversationStep(t *testing.T) {
	m := state.NewManager()
	m.SetState(300, state.StateSelectingPlan)

	passed, rejected := 0, 0
	h := RequireState(m, state.StateSelectingPlan, func(c tele.Context) error {
		rejected++
		return nil
	})(func(c tele.Context) error {
		passed++
		return nil
	})

	// at the right step
	if err := h(&stubContext{sender: &tele.User{ID: 300}}); err != nil {
		t.Fatal(err)
	}
	// idle user pressing a stale button
	if err := h(&stubContext{sender: &tele.User{ID: 301}}); err != nil {
		t.Fatal(err)
	}

	if passed != 1 || rejected != 1 {
		t.Fatalf("passed = %d, rejected = %d, want 1 and 1", passed, rejected)
	}
}
