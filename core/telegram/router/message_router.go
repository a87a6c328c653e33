package router

import (
	tele "gopkg.in/telebot.v4"

	"github.com/chanceofrain/spotifam/core/telegram/state"
)

// NewMessageRouter handles plain text updates. Messages from users who are
// mid-conversation go to the FSM step handler; everything else goes to the
// fallback.
func NewMessageRouter(m *state.Manager, hs *state.HandlerSet, fallback tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		handled, err := dispatchState(m, hs, c)
		if handled {
			return err
		}
		if fallback != nil {
			return handleWithSummary("msg.fallback", fallback)(c)
		}
		return nil
	}
}

func dispatchState(m *state.Manager, hs *state.HandlerSet, c tele.Context) (bool, error) {
	sender := c.Sender()
	if sender == nil {
		return false, nil
	}
	st := m.GetState(sender.ID)
	if st == state.StateIdle {
		return false, nil
	}
	h, ok := hs.Lookup(st)
	if !ok {
		return false, nil
	}
	name := "fsm." + string(st)
	return true, handleWithSummary(name, func(c tele.Context) error {
		return h(c, m.Get(sender.ID))
	})(c)
}
