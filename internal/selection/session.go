package selection

import (
	"errors"
	"sync"
	"time"

	"github.com/fdg312/mealweek/internal/catalog"
	"github.com/google/uuid"
)

var ErrUnknownDay = errors.New("unknown day")

// Plan is the catalog view a session needs.
type Plan interface {
	Registry
	Day(id string) (catalog.DayPlan, bool)
	FirstDay() catalog.DayPlan
}

// Snapshot is a consistent copy of a session taken under its lock.
type Snapshot struct {
	SessionID  uuid.UUID
	Day        catalog.DayPlan
	Selections map[catalog.MealSlotType]string
	Overridden map[catalog.MealSlotType]bool
}

// Session is one viewer's state: the day being viewed and its selections.
// Switching days always discards overrides.
type Session struct {
	ID          uuid.UUID
	OwnerUserID string
	CreatedAt   time.Time

	mu       sync.Mutex
	plan     Plan
	state    *State
	lastSeen time.Time
}

func newSession(plan Plan, ownerUserID string, day catalog.DayPlan, now time.Time) *Session {
	return &Session{
		ID:          uuid.New(),
		OwnerUserID: ownerUserID,
		CreatedAt:   now,
		plan:        plan,
		state:       New(plan, day),
		lastSeen:    now,
	}
}

// SwitchDay replaces the state with a fresh one built from the day defaults,
// even when dayID is the day already being viewed.
func (s *Session) SwitchDay(dayID string) error {
	day, ok := s.plan.Day(dayID)
	if !ok {
		return ErrUnknownDay
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = New(s.plan, day)
	return nil
}

func (s *Session) Select(slot catalog.MealSlotType, optionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Select(slot, optionID)
}

func (s *Session) Cycle(slot catalog.MealSlotType, step int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Cycle(slot, step)
}

func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Reset()
}

func (s *Session) DayID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.DayID()
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	overridden := make(map[catalog.MealSlotType]bool, len(catalog.Slots()))
	for _, slot := range catalog.Slots() {
		overridden[slot] = !s.state.IsDefault(slot)
	}
	return Snapshot{
		SessionID:  s.ID,
		Day:        s.state.Day(),
		Selections: s.state.Snapshot(),
		Overridden: overridden,
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
