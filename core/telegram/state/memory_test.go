package state

import "testing"

func TestManagerStateTransitions(t *testing.T) {
	m := NewManager()
	const uid int64 = 42

	if got := m.GetState(uid); got != StateIdle {
		t.Fatalf("fresh user state = %q, want idle", got)
	}
	if m.InProgress(uid) {
		t.Fatal("fresh user reported in progress")
	}

	m.SetState(uid, StateAwaitingCredentials)
	if !m.HasState(uid, StateAwaitingCredentials) {
		t.Fatal("HasState(awaiting_credentials) = false after SetState")
	}
	if !m.InProgress(uid) {
		t.Fatal("InProgress = false while awaiting credentials")
	}

	m.ClearState(uid)
	if got := m.GetState(uid); got != StateIdle {
		t.Fatalf("state after ClearState = %q, want idle", got)
	}
}

func TestManagerOrderRefSurvivesClearState(t *testing.T) {
	m := NewManager()
	const uid int64 = 7

	m.SetOrderRef(uid, "ORDER_00001")
	m.SetState(uid, StateAwaitingPayment)
	m.ClearState(uid)

	if got := m.OrderRef(uid); got != "ORDER_00001" {
		t.Fatalf("OrderRef after ClearState = %q, want ORDER_00001", got)
	}

	m.Clear(uid)
	if got := m.OrderRef(uid); got != "" {
		t.Fatalf("OrderRef after Clear = %q, want empty", got)
	}
}
