package recommend

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hassaancode/CineSage/internal/media"
)

// Session carries the accumulated state of one recommendation query
// across "load more" continuations: the original query text, the identity
// keys of every item already delivered, and their display titles for the
// generator's exclusion prompt.
type Session struct {
	ID        string
	Query     string
	CreatedAt time.Time

	mu        sync.Mutex
	updatedAt time.Time
	seen      map[media.Key]struct{}
	titles    []string
}

// Record adds delivered items to the session's exclusion state.
func (s *Session) Record(items []media.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		key := item.Key()
		if _, ok := s.seen[key]; ok {
			continue
		}
		s.seen[key] = struct{}{}
		s.titles = append(s.titles, item.Title)
	}
	s.updatedAt = time.Now()
}

// Seen returns a copy of the identity keys delivered so far.
func (s *Session) Seen() map[media.Key]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[media.Key]struct{}, len(s.seen))
	for key := range s.seen {
		seen[key] = struct{}{}
	}
	return seen
}

// Titles returns a copy of the titles delivered so far, in delivery order.
func (s *Session) Titles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	titles := make([]string, len(s.titles))
	copy(titles, s.titles)
	return titles
}

func (s *Session) touchedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// SessionStore holds active recommendation sessions in memory.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
	}
}

// New creates and registers a session for a fresh query.
func (st *SessionStore) New(query string) *Session {
	now := time.Now()
	session := &Session{
		ID:        uuid.NewString(),
		Query:     query,
		CreatedAt: now,
		updatedAt: now,
		seen:      make(map[media.Key]struct{}),
	}

	st.mu.Lock()
	st.sessions[session.ID] = session
	st.mu.Unlock()

	return session
}

// Get returns the session with the given id, or false.
func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	session, ok := st.sessions[id]
	return session, ok
}

// Len returns the number of active sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Prune removes sessions idle for longer than ttl and returns how many
// were removed.
func (st *SessionStore) Prune(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, session := range st.sessions {
		if session.touchedAt().Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}
