// Package identity exposes the current authenticated principal and a
// change-notification stream for login/logout transitions.
package identity

import (
	"sync"

	"github.com/google/uuid"
)

// Principal is the authenticated user as seen by collection state containers.
type Principal struct {
	ID    uuid.UUID
	Email string
}

// Provider reports the current principal (nil when logged out) and notifies
// subscribers when it changes.
type Provider interface {
	Current() *Principal
	// OnChange registers fn to be invoked with the new principal (or nil on
	// logout). The returned function unsubscribes.
	OnChange(fn func(*Principal)) (unsubscribe func())
}

// Session is an in-memory Provider. Safe for concurrent use.
type Session struct {
	mu        sync.RWMutex
	current   *Principal
	nextID    int
	listeners map[int]func(*Principal)
}

// NewSession creates a Session with no principal present.
func NewSession() *Session {
	return &Session{listeners: make(map[int]func(*Principal))}
}

// Current returns the principal, or nil when none is present.
func (s *Session) Current() *Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// OnChange implements Provider.
func (s *Session) OnChange(fn func(*Principal)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Set records a login (or token refresh) and notifies subscribers.
func (s *Session) Set(p *Principal) {
	s.notify(p)
}

// Clear records a logout and notifies subscribers with nil.
func (s *Session) Clear() {
	s.notify(nil)
}

func (s *Session) notify(p *Principal) {
	s.mu.Lock()
	s.current = p
	fns := make([]func(*Principal), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(p)
	}
}
