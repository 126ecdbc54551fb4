// Package session keeps per-browser taco orders in memory.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tacocloud/web/internal/taco"
)

// ErrNotFound is returned for unknown or expired session IDs.
var ErrNotFound = errors.New("session not found")

type session struct {
	order     taco.Order
	expiresAt time.Time
}

// Store is a thread-safe in-memory session store. Every access to a live
// session pushes its expiry forward by the store's TTL.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates an empty store whose sessions live for ttl after their
// last access.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// TTL returns the idle lifetime of a session.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create starts a session holding an empty order and returns its ID.
func (s *Store) Create() uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	s.sessions[id] = &session{expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return id
}

// Touch reports whether id names a live session, extending it if so.
func (s *Store) Touch(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live(id) != nil
}

// Order returns a copy of the session's order.
func (s *Store) Order(id uuid.UUID) (taco.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.live(id)
	if sess == nil {
		return taco.Order{}, ErrNotFound
	}
	return sess.order.Clone(), nil
}

// Update runs fn against the session's order while holding the store lock.
// Changes are kept only when fn returns nil.
func (s *Store) Update(id uuid.UUID, fn func(o *taco.Order) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.live(id)
	if sess == nil {
		return ErrNotFound
	}
	draft := sess.order.Clone()
	if err := fn(&draft); err != nil {
		return err
	}
	sess.order = draft
	return nil
}

// Len returns the number of stored sessions, expired ones included until
// the next sweep.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if !now.Before(sess.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// live returns the session if present and unexpired, extending its expiry.
// Expired sessions are removed. Callers must hold s.mu.
func (s *Store) live(id uuid.UUID) *session {
	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}
	now := s.now()
	if !now.Before(sess.expiresAt) {
		delete(s.sessions, id)
		return nil
	}
	sess.expiresAt = now.Add(s.ttl)
	return sess
}
