package service

import (
	"errors"
	"sync"

	"cabinet-configurator/internal/configurator/store"

	"github.com/google/uuid"
)

// ============================================================
// Session Manager
// ============================================================

var ErrSessionLimit = errors.New("session limit reached")

// SessionManager хранит Module Store каждой сессии в памяти.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*store.Store // sessionID -> store
	limit    int
	opts     []store.Option
	onChange func(count int)
}

// NewSessionManager limit <= 0 означает без ограничения.
func NewSessionManager(limit int, opts ...store.Option) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*store.Store),
		limit:    limit,
		opts:     opts,
		onChange: func(int) {},
	}
}

// OnChange вызывается с числом сессий после создания и удаления.
func (m *SessionManager) OnChange(fn func(count int)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

func (m *SessionManager) Create() (string, *store.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.limit > 0 && len(m.sessions) >= m.limit {
		return "", nil, ErrSessionLimit
	}

	id := uuid.NewString()
	s := store.New(m.opts...)
	m.sessions[id] = s
	m.onChange(len(m.sessions))
	return id, s, nil
}

func (m *SessionManager) Get(id string) (*store.Store, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	return s, ok
}

func (m *SessionManager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	m.onChange(len(m.sessions))
	return true
}

func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Full true, когда новую сессию создать уже нельзя.
func (m *SessionManager) Full() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.limit > 0 && len(m.sessions) >= m.limit
}
