package state

import "time"

// State names a step of the order conversation.
type State string

const (
	// StateIdle means no conversation is in progress.
	StateIdle State = ""
	// StateSelectingPlan is set after the user opens the plan list.
	StateSelectingPlan State = "selecting_plan"
	// StateAwaitingCredentials means the next text message is treated as
	// the user's Spotify login:password pair.
	StateAwaitingCredentials State = "awaiting_credentials"
	// StateAwaitingPayment means credentials were accepted and the user
	// holds a payment link.
	StateAwaitingPayment State = "awaiting_payment"
)

// Session is the per-user conversation record. OrderID carries the order
// under construction between FSM steps so text handlers never have to guess
// which order a message belongs to.
type Session struct {
	State     State
	OrderID   string
	UpdatedAt time.Time
}
