package state

import (
	"sync"
	"time"

	tele "gopkg.in/telebot.v4"
)

// Manager keeps conversation sessions keyed by Telegram user ID.
// All methods are safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*Session)}
}

// Get returns the session for userID, creating an idle one if absent.
func (m *Manager) Get(userID int64) *Session {
	m.mu.RLock()
	s, ok := m.sessions[userID]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		return s
	}
	s = &Session{State: StateIdle, UpdatedAt: time.Now()}
	m.sessions[userID] = s
	return s
}

// SetState moves the user's conversation to st.
func (m *Manager) SetState(userID int64, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		s = &Session{}
		m.sessions[userID] = s
	}
	s.State = st
	s.UpdatedAt = time.Now()
}

// GetState reports the current conversation step for userID.
func (m *Manager) GetState(userID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[userID]; ok {
		return s.State
	}
	return StateIdle
}

// HasState reports whether the user is exactly at st.
func (m *Manager) HasState(userID int64, st State) bool {
	return m.GetState(userID) == st
}

// SetOrderRef records which order the conversation is about.
func (m *Manager) SetOrderRef(userID int64, orderID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		s = &Session{}
		m.sessions[userID] = s
	}
	s.OrderID = orderID
	s.UpdatedAt = time.Now()
}

// OrderRef returns the order attached to the conversation.
func (m *Manager) OrderRef(userID int64) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[userID]; ok {
		return s.OrderID
	}
	return ""
}

// ClearState resets the step but keeps the order reference.
func (m *Manager) ClearState(userID int64) {
	m.SetState(userID, StateIdle)
}

// Clear drops the whole session.
func (m *Manager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// ActiveIDs returns the users currently mid-conversation.
func (m *Manager) ActiveIDs() []int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]int64, 0, len(m.sessions))
	for id, s := range m.sessions {
		if s.State != StateIdle {
			ids = append(ids, id)
		}
	}
	return ids
}

// InProgress reports whether the user is mid-conversation.
func (m *Manager) InProgress(userID int64) bool {
	return m.GetState(userID) != StateIdle
}

// ManagerHandler is the signature of a step handler bound to an FSM state.
type ManagerHandler func(c tele.Context, s *Session) error
