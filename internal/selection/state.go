// Package selection tracks which meal option is chosen for each slot of the
// day being viewed.
package selection

import (
	"errors"
	"fmt"
	"maps"

	"github.com/fdg312/mealweek/internal/catalog"
)

var ErrUnknownSlot = errors.New("unknown meal slot")

// InvalidOptionError is returned when an option is not registered for a slot.
type InvalidOptionError struct {
	Slot     catalog.MealSlotType
	OptionID string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("option %q is not available for %s", e.OptionID, e.Slot)
}

// Registry is the part of the catalog selection validates against.
type Registry interface {
	OptionsFor(slot catalog.MealSlotType) []catalog.MealOption
	OptionIndex(slot catalog.MealSlotType, id string) (int, bool)
}

// State is the per-day selection. It is not safe for concurrent use;
// Session serializes access to it.
type State struct {
	registry Registry
	day      catalog.DayPlan
	selected map[catalog.MealSlotType]string
}

// New starts a selection from the defaults of day.
func New(registry Registry, day catalog.DayPlan) *State {
	s := &State{
		registry: registry,
		day:      day,
		selected: make(map[catalog.MealSlotType]string, len(day.Meals)),
	}
	s.Reset()
	return s
}

func (s *State) DayID() string {
	return s.day.ID
}

func (s *State) Day() catalog.DayPlan {
	return s.day
}

// Reset restores every slot to the day default.
func (s *State) Reset() {
	for _, slot := range catalog.Slots() {
		s.selected[slot] = s.day.Meals[slot].DefaultOptionID
	}
}

// Select changes the option of one slot. An option that is not registered
// for slot is rejected with *InvalidOptionError and the previous selection
// is kept.
func (s *State) Select(slot catalog.MealSlotType, optionID string) error {
	if !slot.Valid() {
		return ErrUnknownSlot
	}
	if _, ok := s.registry.OptionIndex(slot, optionID); !ok {
		return &InvalidOptionError{Slot: slot, OptionID: optionID}
	}
	s.selected[slot] = optionID
	return nil
}

// Cycle moves the selection of slot by step positions through the slot's
// options, wrapping around at either end.
func (s *State) Cycle(slot catalog.MealSlotType, step int) (string, error) {
	if !slot.Valid() {
		return "", ErrUnknownSlot
	}
	opts := s.registry.OptionsFor(slot)
	if len(opts) == 0 {
		return "", ErrUnknownSlot
	}
	i, ok := s.registry.OptionIndex(slot, s.selected[slot])
	if !ok {
		i = 0
	}
	next := ((i+step)%len(opts) + len(opts)) % len(opts)
	s.selected[slot] = opts[next].ID
	return opts[next].ID, nil
}

func (s *State) Selected(slot catalog.MealSlotType) string {
	return s.selected[slot]
}

// IsDefault reports whether slot still holds the day default.
func (s *State) IsDefault(slot catalog.MealSlotType) bool {
	return s.selected[slot] == s.day.Meals[slot].DefaultOptionID
}

// Snapshot returns a copy of the current selections.
func (s *State) Snapshot() map[catalog.MealSlotType]string {
	return maps.Clone(s.selected)
}
