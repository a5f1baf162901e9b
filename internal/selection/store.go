package selection

import (
	"errors"
	"sync"
	"time"

	"github.com/fdg312/mealweek/internal/catalog"
	"github.com/google/uuid"
)

const DefaultSessionTTL = 12 * time.Hour

var ErrSessionNotFound = errors.New("session not found")

// Store keeps selection sessions in memory. Selections are never persisted.
type Store struct {
	mu       sync.Mutex
	plan     Plan
	ttl      time.Duration
	sessions map[uuid.UUID]*Session
	now      func() time.Time
}

func NewStore(plan Plan, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Store{
		plan:     plan,
		ttl:      ttl,
		sessions: make(map[uuid.UUID]*Session),
		now:      time.Now,
	}
}

// Create opens a session viewing dayID, or the first day when dayID is empty.
func (s *Store) Create(ownerUserID, dayID string) (*Session, error) {
	var day catalog.DayPlan
	if dayID == "" {
		day = s.plan.FirstDay()
	} else {
		d, ok := s.plan.Day(dayID)
		if !ok {
			return nil, ErrUnknownDay
		}
		day = d
	}

	now := s.now()
	sess := newSession(s.plan, ownerUserID, day, now)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked(now)
	s.sessions[sess.ID] = sess
	return sess, nil
}

// Get returns the session if it exists, belongs to ownerUserID and has not
// expired.
func (s *Store) Get(id uuid.UUID, ownerUserID string) (*Session, error) {
	now := s.now()

	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok && now.Sub(sess.idleSince()) > s.ttl {
		delete(s.sessions, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok || sess.OwnerUserID != ownerUserID {
		return nil, ErrSessionNotFound
	}
	sess.touch(now)
	return sess, nil
}

func (s *Store) Delete(id uuid.UUID, ownerUserID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.OwnerUserID != ownerUserID {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) evictExpiredLocked(now time.Time) {
	for id, sess := range s.sessions {
		if now.Sub(sess.idleSince()) > s.ttl {
			delete(s.sessions, id)
		}
	}
}
