package state

import "sync"

// HandlerSet maps conversation states to the handler that consumes the next
// text message while the user is in that state. The message router consults
// it before falling through to the default text handler.
type HandlerSet struct {
	mu       sync.RWMutex
	handlers map[State]ManagerHandler
}

func NewHandlerSet() *HandlerSet {
	return &HandlerSet{handlers: make(map[State]ManagerHandler)}
}

// Bind registers h for st, replacing any previous binding.
func (hs *HandlerSet) Bind(st State, h ManagerHandler) {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	hs.handlers[st] = h
}

// Lookup returns the handler bound to st, if any.
func (hs *HandlerSet) Lookup(st State) (ManagerHandler, bool) {
	hs.mu.RLock()
	defer hs.mu.RUnlock()
	h, ok := hs.handlers[st]
	return h, ok
}
