package services

import (
	"sync"

	"github.com/google/uuid"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// SessionManager owns the live review sessions, keyed by session id.
// The manager's lock covers the registry only; each session is still
// single-owner and callers serialize turns per session id themselves.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*ReviewSession
}

// NewSessionManager creates an empty session registry.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*ReviewSession)}
}

// Create registers a new idle session and returns it.
func (m *SessionManager) Create() *ReviewSession {
	session := NewReviewSession(uuid.NewString())
	m.mu.Lock()
	m.sessions[session.ID()] = session
	m.mu.Unlock()
	logger.Debug("Created review session %s", session.ID())
	return session
}

// Get returns the session with the given id.
func (m *SessionManager) Get(id string) (*ReviewSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Delete discards the session with the given id. Deleting an unknown
// id is a no-op.
func (m *SessionManager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
