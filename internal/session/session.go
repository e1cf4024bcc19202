// Package session implements the server-side session store backing the web
// application's login state.
//
// Sessions are held in process memory, keyed by an opaque identifier that
// travels in a cookie. Each session carries only a minimal identity
// projection of the logged-in user, never credential material. Expiry is a
// sliding idle window: any successful lookup refreshes the deadline, and an
// entry that has idled past the window behaves exactly like a missing one.
// There is no per-user session cap; logging in twice yields two independent
// sessions.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Identity is the projection of a user stored in a session. It intentionally
// excludes the password hash and email.
type Identity struct {
	UserID   uint64
	Username string
	FullName string
}

// Session is an active login bound to one browser context.
type Session struct {
	ID string
	Identity
}

// Store holds the active sessions. It is safe for concurrent use and is
// created once at process start and injected wherever request handling needs
// it; there is no package-level state.
type Store struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	identity Identity
	lastSeen time.Time
}

// NewStore creates an empty session store with the given idle timeout.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

// TTL returns the configured idle timeout.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create starts a new session for the given identity and returns it. Existing
// sessions for the same user are left untouched.
func (s *Store) Create(id Identity) Session {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = &entry{
		identity: id,
		lastSeen: s.now(),
	}

	return Session{ID: token, Identity: id}
}

// Get resolves a session identifier. A session that has been idle longer than
// the store's timeout is removed and reported as absent. A successful lookup
// refreshes the idle window.
func (s *Store) Get(token string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[token]
	if !ok {
		return Session{}, false
	}
	now := s.now()
	if now.Sub(e.lastSeen) > s.ttl {
		delete(s.sessions, token)
		return Session{}, false
	}
	e.lastSeen = now

	return Session{ID: token, Identity: e.identity}, true
}

// Destroy removes a session immediately. Destroying an unknown identifier is
// a no-op.
func (s *Store) Destroy(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// Len returns the number of stored sessions, including ones that have idled
// out but have not been looked up since.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
