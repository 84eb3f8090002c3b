// Package memory is the in-process session store. State lives only for the
// process lifetime; expiry is handled by a periodic sweep over idle sessions.
package memory

import (
	"sync"
	"time"

	"github.com/NoaSegev3/travel-assistant-ai/internal/domain"
)

type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*domain.State
	locks    map[domain.SessionID]*sync.Mutex

	maxHistory int
	ttl        time.Duration
	now        func() time.Time
}

func NewSessionStore(maxHistory int, ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions:   make(map[domain.SessionID]*domain.State),
		locks:      make(map[domain.SessionID]*sync.Mutex),
		maxHistory: maxHistory,
		ttl:        ttl,
		now:        time.Now,
	}
}

// WithNow overrides the clock, for tests.
func (s *SessionStore) WithNow(now func() time.Time) *SessionStore {
	s.now = now
	return s
}

// Acquire locks the per-session mutex for id and returns its release
// function. The session lock survives sweeps, so a turn racing an expiry
// still serializes against it.
func (s *SessionStore) Acquire(id domain.SessionID) func() {
	s.mu.Lock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func (s *SessionStore) GetOrCreate(id domain.SessionID) (*domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.sessions[id]; ok {
		return st, nil
	}

	now := s.now()
	st := &domain.State{
		SessionID: id,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions[id] = st
	return st, nil
}

// Peek returns a consistent copy of the session without creating or touching
// it. The copy is taken inside the per-session critical section, so a
// snapshot never observes a half-applied turn and the caller may read it
// without further locking.
func (s *SessionStore) Peek(id domain.SessionID) (*domain.State, error) {
	s.mu.RLock()
	_, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	release := s.Acquire(id)
	defer release()

	s.mu.RLock()
	st, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		// Swept between the existence check and taking the session lock.
		return nil, domain.ErrSessionNotFound
	}
	return st.Clone(), nil
}

func (s *SessionStore) AppendMessage(id domain.SessionID, role domain.Role, content string) (*domain.State, error) {
	st, err := s.GetOrCreate(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st.History = append(st.History, domain.Message{
		Role:      role,
		Content:   content,
		CreatedAt: s.now(),
	})
	if s.maxHistory > 0 && len(st.History) > s.maxHistory {
		st.History = st.History[len(st.History)-s.maxHistory:]
	}
	st.UpdatedAt = s.now()
	return st, nil
}

func (s *SessionStore) IncrementTurn(st *domain.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st.TurnCount++
	st.UpdatedAt = s.now()
}

// SweepExpired removes sessions idle longer than the TTL. Each candidate is
// removed under its own session lock so an in-flight turn either finishes
// first or recreates the session cleanly afterwards.
func (s *SessionStore) SweepExpired(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.RLock()
	var candidates []domain.SessionID
	for id, st := range s.sessions {
		if now.Sub(st.UpdatedAt) > s.ttl {
			candidates = append(candidates, id)
		}
	}
	s.mu.RUnlock()

	removed := 0
	for _, id := range candidates {
		release := s.Acquire(id)

		s.mu.Lock()
		if st, ok := s.sessions[id]; ok && now.Sub(st.UpdatedAt) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
		s.mu.Unlock()

		release()
	}
	return removed
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
