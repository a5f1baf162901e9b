package mealplans

import (
	"context"
	"errors"
	"fmt"

	"github.com/fdg312/mealweek/internal/catalog"
	"github.com/fdg312/mealweek/internal/nutrition"
	"github.com/fdg312/mealweek/internal/selection"
	"github.com/google/uuid"
)

var ErrUnknownDay = errors.New("unknown day")

// TargetProvider resolves the owner's daily calorie target.
type TargetProvider interface {
	CalorieTarget(ctx context.Context, ownerUserID string) (int, error)
}

// Service renders the week plan and drives selection sessions.
type Service struct {
	catalog    *catalog.Catalog
	aggregator *nutrition.Aggregator
	sessions   *selection.Store
	targets    TargetProvider
}

// NewService creates a new meal plans service. targets may be nil, in which
// case progress is measured against the default target.
func NewService(c *catalog.Catalog, sessions *selection.Store, targets TargetProvider) *Service {
	return &Service{
		catalog:    c,
		aggregator: nutrition.FromCatalog(c),
		sessions:   sessions,
		targets:    targets,
	}
}

// Week returns every day with its schedule and default meals.
func (s *Service) Week() WeekResponse {
	week := s.catalog.Week()
	days := make([]DaySummaryDTO, 0, len(week))
	for _, day := range week {
		meals := make([]SlotDefaultDTO, 0, len(day.Meals))
		for _, slot := range catalog.Slots() {
			ds := day.Meals[slot]
			meals = append(meals, SlotDefaultDTO{
				Slot:            slot,
				Title:           s.catalog.TitleOf(slot),
				Time:            ds.Time,
				DefaultOptionID: ds.DefaultOptionID,
			})
		}
		days = append(days, DaySummaryDTO{
			ID:    day.ID,
			Label: day.Label,
			Work:  day.Work,
			Gym:   day.Gym,
			Meals: meals,
		})
	}
	return WeekResponse{Days: days}
}

// Slots returns every slot with its options in display order.
func (s *Service) Slots() SlotsResponse {
	slots := make([]SlotDTO, 0, len(catalog.Slots()))
	for _, slot := range catalog.Slots() {
		opts := s.catalog.OptionsFor(slot)
		dtos := make([]OptionDTO, 0, len(opts))
		for _, opt := range opts {
			n := s.aggregator.ForOption(opt.ID)
			dtos = append(dtos, OptionDTO{
				ID:        opt.ID,
				Label:     opt.Label,
				Items:     opt.Items,
				Nutrition: n,
				Kcal:      nutrition.Kcal(n),
				Estimated: !s.aggregator.HasComposition(opt.ID),
			})
		}
		slots = append(slots, SlotDTO{Slot: slot, Title: s.catalog.TitleOf(slot), Options: dtos})
	}
	return SlotsResponse{Slots: slots}
}

// DefaultView renders dayID with its default selections.
func (s *Service) DefaultView(ctx context.Context, ownerUserID, dayID string) (*DayViewDTO, error) {
	day, ok := s.catalog.Day(dayID)
	if !ok {
		return nil, ErrUnknownDay
	}
	return s.render(ctx, ownerUserID, day, defaultSelections(day), nil, nil)
}

// Resolve renders dayID using the session's selection when the session is
// viewing that day, and the defaults otherwise.
func (s *Service) Resolve(ctx context.Context, ownerUserID, dayID string, sessionID *uuid.UUID) (*DayViewDTO, error) {
	if sessionID != nil {
		sess, err := s.sessions.Get(*sessionID, ownerUserID)
		if err != nil {
			return nil, err
		}
		snap := sess.Snapshot()
		if snap.Day.ID == dayID {
			return s.renderSnapshot(ctx, ownerUserID, snap)
		}
	}
	return s.DefaultView(ctx, ownerUserID, dayID)
}

// CreateSession opens a selection session on dayID, or on the first day.
func (s *Service) CreateSession(ctx context.Context, ownerUserID, dayID string) (*DayViewDTO, error) {
	sess, err := s.sessions.Create(ownerUserID, dayID)
	if err != nil {
		return nil, mapSelectionError(err)
	}
	return s.renderSnapshot(ctx, ownerUserID, sess.Snapshot())
}

func (s *Service) GetSession(ctx context.Context, ownerUserID string, id uuid.UUID) (*DayViewDTO, error) {
	sess, err := s.sessions.Get(id, ownerUserID)
	if err != nil {
		return nil, err
	}
	return s.renderSnapshot(ctx, ownerUserID, sess.Snapshot())
}

// SwitchDay moves the session to dayID and resets every slot to its default.
func (s *Service) SwitchDay(ctx context.Context, ownerUserID string, id uuid.UUID, dayID string) (*DayViewDTO, error) {
	sess, err := s.sessions.Get(id, ownerUserID)
	if err != nil {
		return nil, err
	}
	if err := sess.SwitchDay(dayID); err != nil {
		return nil, mapSelectionError(err)
	}
	return s.renderSnapshot(ctx, ownerUserID, sess.Snapshot())
}

// SelectOption chooses optionID for slotName. On error the selection is unchanged.
func (s *Service) SelectOption(ctx context.Context, ownerUserID string, id uuid.UUID, slotName, optionID string) (*DayViewDTO, error) {
	slot, ok := catalog.ParseSlot(slotName)
	if !ok {
		return nil, selection.ErrUnknownSlot
	}
	sess, err := s.sessions.Get(id, ownerUserID)
	if err != nil {
		return nil, err
	}
	if err := sess.Select(slot, optionID); err != nil {
		return nil, err
	}
	return s.renderSnapshot(ctx, ownerUserID, sess.Snapshot())
}

// Cycle moves slotName step positions through its options, wrapping around.
func (s *Service) Cycle(ctx context.Context, ownerUserID string, id uuid.UUID, slotName string, step int) (*DayViewDTO, error) {
	slot, ok := catalog.ParseSlot(slotName)
	if !ok {
		return nil, selection.ErrUnknownSlot
	}
	if step == 0 {
		step = 1
	}
	sess, err := s.sessions.Get(id, ownerUserID)
	if err != nil {
		return nil, err
	}
	if _, err := sess.Cycle(slot, step); err != nil {
		return nil, err
	}
	return s.renderSnapshot(ctx, ownerUserID, sess.Snapshot())
}

func (s *Service) DeleteSession(ownerUserID string, id uuid.UUID) error {
	return s.sessions.Delete(id, ownerUserID)
}

// Day exposes the catalog day for callers that render it elsewhere.
func (s *Service) Day(dayID string) (catalog.DayPlan, bool) {
	return s.catalog.Day(dayID)
}

func (s *Service) renderSnapshot(ctx context.Context, ownerUserID string, snap selection.Snapshot) (*DayViewDTO, error) {
	id := snap.SessionID
	return s.render(ctx, ownerUserID, snap.Day, snap.Selections, snap.Overridden, &id)
}

func (s *Service) render(ctx context.Context, ownerUserID string, day catalog.DayPlan, selected map[catalog.MealSlotType]string, overridden map[catalog.MealSlotType]bool, sessionID *uuid.UUID) (*DayViewDTO, error) {
	target := nutrition.DefaultCalorieTarget
	if s.targets != nil {
		t, err := s.targets.CalorieTarget(ctx, ownerUserID)
		if err != nil {
			return nil, fmt.Errorf("load calorie target: %w", err)
		}
		target = t
	}

	meals := make([]MealViewDTO, 0, len(day.Meals))
	for _, slot := range catalog.Slots() {
		optionID := selected[slot]
		opt, ok := s.catalog.Option(slot, optionID)
		if !ok {
			return nil, fmt.Errorf("option %q not registered for %s", optionID, slot)
		}
		n := s.aggregator.ForOption(optionID)
		meals = append(meals, MealViewDTO{
			Slot:       slot,
			Title:      s.catalog.TitleOf(slot),
			Time:       day.Meals[slot].Time,
			OptionID:   optionID,
			Label:      opt.Label,
			Items:      opt.Items,
			Nutrition:  n,
			Kcal:       nutrition.Kcal(n),
			Estimated:  !s.aggregator.HasComposition(optionID),
			Overridden: overridden[slot],
		})
	}

	total := s.aggregator.DayTotal(selected)
	return &DayViewDTO{
		SessionID: sessionID,
		DayID:     day.ID,
		Label:     day.Label,
		Work:      day.Work,
		Gym:       day.Gym,
		Meals:     meals,
		Total:     total,
		TotalKcal: nutrition.Kcal(total),
		Macros:    nutrition.Macros(total),
		Progress:  nutrition.Progress(total, target),
	}, nil
}

func defaultSelections(day catalog.DayPlan) map[catalog.MealSlotType]string {
	out := make(map[catalog.MealSlotType]string, len(day.Meals))
	for slot, ds := range day.Meals {
		out[slot] = ds.DefaultOptionID
	}
	return out
}

func mapSelectionError(err error) error {
	if errors.Is(err, selection.ErrUnknownDay) {
		return ErrUnknownDay
	}
	return err
}
