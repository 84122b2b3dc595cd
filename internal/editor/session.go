package editor

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/alebedeva/cardforge/internal/domain"
	"github.com/alebedeva/cardforge/internal/metrics"
)

var ErrSessionNotFound = errors.New("editing session not found")

// SessionManager owns the in-progress editing sessions. A session is
// transient: it lives from "open editor" until the customization is added to
// the cart or abandoned.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*History
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*History),
	}
}

// Open starts a session for the card and returns its id.
func (m *SessionManager) Open(card *domain.Card) string {
	id := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = NewHistory(card)
	metrics.EditorSessionsOpen.Inc()
	return id
}

// With runs fn against the session's history under the manager lock, so a
// commit/undo/redo sequence from concurrent requests cannot interleave
// mid-operation.
func (m *SessionManager) With(id string, fn func(*History)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	fn(h)
	return nil
}

// Close drops the session; called once the result is added to the cart or
// the shopper walks away.
func (m *SessionManager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; ok {
		delete(m.sessions, id)
		metrics.EditorSessionsOpen.Dec()
	}
}

func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
