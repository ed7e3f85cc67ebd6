// Package session keeps the per-browser drawing state. Sessions are
// in-memory only: parameters live for the lifetime of one editing
// session and are never persisted.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/techdraw/backend/internal/models"
)

// MaxSessions limits concurrent sessions to prevent memory exhaustion.
const MaxSessions = 100

// DefaultTTL is how long an idle session survives before cleanup.
const DefaultTTL = 30 * time.Minute

// state pairs a session with its last access time for TTL cleanup.
type state struct {
	session      *models.DrawingSession
	lastAccessed time.Time
}

// Manager holds the active drawing sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*state
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*state)}
}

// Create starts a new drawing session with the given initial state.
// The state must already be validated by the caller.
func (m *Manager) Create(initial models.DrawingState) (*models.DrawingSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= MaxSessions {
		m.evictOldestLocked()
	}

	s := &models.DrawingSession{
		ID:    uuid.New().String(),
		State: initial,
	}
	m.sessions[s.ID] = &state{session: s, lastAccessed: time.Now()}
	return s, nil
}

// Get returns a session by ID and refreshes its access time.
func (m *Manager) Get(id string) (*models.DrawingSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s not found", id)
	}
	st.lastAccessed = time.Now()
	return st.session, nil
}

// Commit replaces a session's drawing state. The caller validates the
// new state first; on validation failure nothing is committed and the
// prior state remains current.
func (m *Manager) Commit(id string, next models.DrawingState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.sessions[id]
	if !ok {
		return fmt.Errorf("session %s not found", id)
	}
	st.session.State = next
	st.lastAccessed = time.Now()
	return nil
}

// KeepAlive refreshes a session's access time without touching state.
func (m *Manager) KeepAlive(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.sessions[id]
	if !ok {
		return fmt.Errorf("session %s not found", id)
	}
	st.lastAccessed = time.Now()
	return nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CleanupOldSessions drops sessions idle for longer than maxAge and
// returns how many were removed.
func (m *Manager) CleanupOldSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, st := range m.sessions {
		if st.lastAccessed.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// evictOldestLocked removes the least recently used session to make
// room. Caller holds the lock.
func (m *Manager) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, st := range m.sessions {
		if oldestID == "" || st.lastAccessed.Before(oldest) {
			oldestID = id
			oldest = st.lastAccessed
		}
	}
	if oldestID != "" {
		delete(m.sessions, oldestID)
	}
}
