// internal/store/memory.go
//
// In-memory store of solver sessions.
// A session is one puzzle being solved interactively over the HTTP API; it
// owns a *solver.Solver whose solution space shrinks as answers arrive.
//
// Characteristics:
//   - Sessions keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Sessions idle longer than the TTL are evicted on Sweep.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// ErrNotFound is returned by Get for unknown or expired sessions.
var ErrNotFound = errors.New("not found")

// Session is one in-progress solve.
type Session struct {
	ID       string
	Solver   *solver.Solver
	Created  time.Time
	LastUsed time.Time
}

// Store defines the persistence interface for solver sessions.
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID and marks it used.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete drops a session; unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Sweep evicts sessions idle for longer than the TTL and returns how many went.
	Sweep(ctx context.Context) int

	// Len is the number of live sessions.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex        // guards sessions
	sessions map[string]*Session // keyed by Session.ID
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore constructs an in-memory Store. ttl <= 0 disables eviction.
func NewMemoryStore(ttl time.Duration) Store {
	return &memory{sessions: make(map[string]*Session), ttl: ttl, now: time.Now}
}

// Save adds or updates the session in the map.
func (m *memory) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if s.Created.IsZero() {
		s.Created = now
	}
	s.LastUsed = now
	m.sessions[s.ID] = s
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || m.expired(s) {
		return nil, ErrNotFound
	}
	s.LastUsed = m.now()
	return s, nil
}

// Delete removes a session.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Sweep evicts expired sessions.
func (m *memory) Sweep(ctx context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if m.expired(s) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Len reports the number of stored sessions, expired ones included until swept.
func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *memory) expired(s *Session) bool {
	return m.ttl > 0 && m.now().Sub(s.LastUsed) > m.ttl
}
