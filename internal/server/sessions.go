package server

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/promptcoach/internal/rage"
)

// errSessionNotFound is returned for unknown or expired session ids.
var errSessionNotFound = errors.New("session not found")

type sessionEntry struct {
	mu       sync.Mutex
	mgr      *rage.Manager
	lastSeen time.Time
}

// registry holds the live rage sessions. Each rage.Manager is single-owner,
// so every call on one runs under that entry's lock.
type registry struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	now      func() time.Time
	factory  func() *rage.Manager
}

func newRegistry(factory func() *rage.Manager) *registry {
	if factory == nil {
		factory = rage.NewManager
	}
	return &registry{
		sessions: make(map[string]*sessionEntry),
		now:      time.Now,
		factory:  factory,
	}
}

// create starts a session and returns its id.
func (r *registry) create(userID string) (string, *rage.Session) {
	mgr := r.factory()
	sess := mgr.Start(userID)
	id := uuid.NewString()

	r.mu.Lock()
	r.sessions[id] = &sessionEntry{mgr: mgr, lastSeen: r.now()}
	r.mu.Unlock()
	return id, sess
}

// with runs fn holding the session's lock.
func (r *registry) with(id string, fn func(*rage.Manager) error) error {
	r.mu.Lock()
	e, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return errSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSeen = r.now()
	return fn(e.mgr)
}

func (r *registry) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// sweep drops sessions idle for longer than ttl and returns how many.
func (r *registry) sweep(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, e := range r.sessions {
		e.mu.Lock()
		idle := e.lastSeen.Before(cutoff)
		e.mu.Unlock()
		if idle {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
