package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager keeps all live sessions keyed by their cookie token. Requests for
// different sessions run concurrently, hence the RWMutex around the map;
// each Session guards its own fields.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create makes a new session with the day's question already selected and
// returns it along with its token.
func (m *Manager) Create(question, theme string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &Session{
		Token:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		question:  question,
		theme:     theme,
	}
	m.sessions[s.Token] = s
	return s
}

func (m *Manager) Get(token string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	return s, ok
}

// Count reports the number of live sessions, for the healthcheck.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
