// internal/store/memory.go
//
// In-memory registry of live solver sessions for the HTTP API.
//
// Characteristics:
//   - Stores *solver.Session objects keyed by ID in a map.
//   - The map is guarded by an RWMutex; each session has its own mutex and is
//     only touched inside Update, so two requests never race on one session.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/wordle-solver/internal/solver"
)

// ErrNotFound indicates an unknown session ID.
var ErrNotFound = errors.New("store: session not found")

// Store defines the registry interface for solver sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, id string, s *solver.Session) error

	// Update runs fn with exclusive access to the session.
	// Returns ErrNotFound for unknown IDs, otherwise fn's error.
	Update(ctx context.Context, id string, fn func(*solver.Session) error) error

	// Delete removes a session. Deleting an unknown ID returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Len returns the number of live sessions.
	Len() int
}

type entry struct {
	mu   sync.Mutex
	sess *solver.Session
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex      // guards sessions map
	sessions map[string]*entry // keyed by session ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*entry)}
}

func (m *memory) Save(ctx context.Context, id string, s *solver.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = &entry{sess: s}
	return nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(*solver.Session) error) error {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.sess)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
