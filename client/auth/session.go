package auth

import (
	"context"
	"sync"
)

// Session is an authenticated client identity. A refresh replaces the whole
// session; sessions are never mutated in place.
type Session struct {
	AccessToken string
	UserID      string
}

// Store holds the current session behind a mutex so the fetch layer and a
// refresh can race safely.
type Store struct {
	mu      sync.RWMutex
	current *Session
}

// NewStore creates a session store, optionally seeded with a session.
func NewStore(initial *Session) *Store {
	return &Store{current: initial}
}

// Current returns the current session, or nil when unauthenticated.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace swaps in a new session wholesale.
func (s *Store) Replace(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = session
}

// Clear drops the current session.
func (s *Store) Clear() {
	s.Replace(nil)
}

// Refresher exchanges the current credentials for a fresh session.
type Refresher interface {
	Refresh(ctx context.Context) (*Session, error)
}
