// Package session holds the per-user-context state of the dashboard: the
// verified identity, the last successful recommendation results and any
// authorization code that arrived with the current request.
//
// A Session belongs to exactly one browser context. Its methods take a short
// internal lock so concurrent requests from the same browser cannot corrupt
// it, but no lock is ever held across a network call.
package session

import (
	"slices"
	"sync"

	"github.com/dmitrijs2005/nutriai/internal/server/models"
)

type Session struct {
	mu sync.Mutex

	id          string
	identity    *models.Identity
	cache       []models.RecommendationResult
	cached      bool
	pendingCode string
	login       chan struct{}
}

// New returns an empty, unauthenticated session.
func New(id string) *Session {
	return &Session{id: id}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity != nil
}

// SetIdentity replaces the identity wholesale. Logging in as a different
// user drops the previous user's cached results.
func (s *Session) SetIdentity(id models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity != nil && s.identity.Email != id.Email {
		s.cache, s.cached = nil, false
	}
	s.identity = &id
}

func (s *Session) GetIdentity() (models.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity == nil {
		return models.Identity{}, false
	}
	return *s.identity, true
}

// SetCache stores a copy of results as the latest successful generation.
// An empty slice is a valid cached outcome ("nothing matched").
func (s *Session) SetCache(results []models.RecommendationResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = slices.Clone(results)
	if s.cache == nil {
		s.cache = []models.RecommendationResult{}
	}
	s.cached = true
}

// GetCache returns the cached results, or false when nothing has been
// generated yet. Without an identity the cache is never reported.
func (s *Session) GetCache() ([]models.RecommendationResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity == nil || !s.cached {
		return nil, false
	}
	return slices.Clone(s.cache), true
}

// BeginLogin claims the session's single login slot for code. The caller
// that gets leader=true must exchange the code and then call EndLogin. Any
// other caller gets the leader's done channel, closed when the attempt ends.
func (s *Session) BeginLogin(code string) (done <-chan struct{}, leader bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.login != nil {
		return s.login, false
	}
	s.login = make(chan struct{})
	s.pendingCode = code
	return s.login, true
}

// EndLogin drops the pending code and releases callers waiting on the
// attempt. It is a no-op without a login in flight.
func (s *Session) EndLogin() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.login == nil {
		return
	}
	close(s.login)
	s.login = nil
	s.pendingCode = ""
}

func (s *Session) PendingCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingCode
}

// Clear logs the user out: identity, cache and pending code go together.
// Calling it again is a no-op.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = nil
	s.cache = nil
	s.cached = false
	s.pendingCode = ""
}
