package session

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/formlab/formlab/internal/schema"
)

// DefaultName is the display name a fresh editing session starts with.
const DefaultName = "Untitled Section"

// Session is one in-memory editing state: the (name, field list) pair the
// generators run over. It only becomes a Project when explicitly saved.
type Session struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Fields    []schema.Field `json:"fields"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (s *Session) clone() *Session {
	copied := *s
	copied.Fields = make([]schema.Field, len(s.Fields))
	copy(copied.Fields, s.Fields)
	return &copied
}

// Manager is the registry of live editing sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create starts a new session. An empty name falls back to DefaultName.
func (m *Manager) Create(name string) *Session {
	if name == "" {
		name = DefaultName
	}
	now := m.now()
	s := &Session{
		ID:        ulid.Make().String(),
		Name:      name,
		Fields:    []schema.Field{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s.clone()
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	return s.clone(), true
}

// Rename changes the display name. The derived project id changes with it on
// the next save; the previously saved entry is untouched.
func (m *Manager) Rename(id, name string) (*Session, bool) {
	return m.mutate(id, func(s *Session) {
		s.Name = name
	})
}

// Replace swaps in a whole (name, fields) pair, e.g. when opening a saved
// project into the session.
func (m *Manager) Replace(id, name string, fields []schema.Field) (*Session, bool) {
	return m.mutate(id, func(s *Session) {
		s.Name = name
		s.Fields = make([]schema.Field, len(fields))
		copy(s.Fields, fields)
	})
}

func (m *Manager) AddField(id string) (*Session, bool) {
	return m.mutate(id, func(s *Session) {
		s.Fields = AddField(s.Fields)
	})
}

func (m *Manager) UpdateField(id string, index int, field schema.Field) (*Session, bool) {
	return m.mutate(id, func(s *Session) {
		s.Fields = UpdateField(s.Fields, index, field)
	})
}

func (m *Manager) RemoveField(id string, index int) (*Session, bool) {
	return m.mutate(id, func(s *Session) {
		s.Fields = RemoveField(s.Fields, index)
	})
}

func (m *Manager) mutate(id string, fn func(*Session)) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	fn(s)
	s.UpdatedAt = m.now()
	return s.clone(), true
}

// Snapshot implements project.SessionSource for save actions.
func (m *Manager) Snapshot(id string) (string, []schema.Field, bool) {
	s, ok := m.Get(id)
	if !ok {
		return "", nil, false
	}
	return s.Name, s.Fields, true
}
