package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry maps browser contexts to their sessions. A session that has not
// been seen for longer than the idle TTL is torn down by Sweep.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

type entry struct {
	session  *Session
	lastSeen time.Time
}

// NewRegistry creates an empty registry. A non-positive ttl disables eviction.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// NewSession returns a fresh context with a random ID. It is not tracked
// until Add is called, so anonymous traffic leaves the registry untouched.
func (r *Registry) NewSession() *Session {
	return New(uuid.NewString())
}

// Add starts tracking s. Adding a tracked session only marks it as seen.
func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.sessions[s.ID()]; ok {
		e.lastSeen = r.now()
		return
	}
	r.sessions[s.ID()] = &entry{session: s, lastSeen: r.now()}
}

// Get returns the live session for id and marks it as seen.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	if r.expired(e) {
		delete(r.sessions, id)
		return nil, false
	}
	e.lastSeen = r.now()
	return e.session, true
}

// Remove destroys the context. Removing an unknown id is a no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Sweep evicts idle sessions and reports how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, e := range r.sessions {
		if r.expired(e) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// RunJanitor sweeps every interval until ctx is done.
func (r *Registry) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.Sweep()
		case <-ctx.Done():
			return
		}
	}
}

func (r *Registry) expired(e *entry) bool {
	return r.ttl > 0 && r.now().Sub(e.lastSeen) > r.ttl
}
