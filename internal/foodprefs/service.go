package foodprefs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fdg312/mealweek/internal/storage"
)

const maxFoodPrefs = 200

var ErrTooManyFoods = fmt.Errorf("at most %d foods can be selected", maxFoodPrefs)

// UnknownFoodError names the first id that is not in any category.
type UnknownFoodError struct {
	FoodID string
}

func (e *UnknownFoodError) Error() string {
	return fmt.Sprintf("unknown food id %q", e.FoodID)
}

// Onboarding owns the profile side of onboarding: the calorie target and the
// completed flag.
type Onboarding interface {
	GetOrCreate(ctx context.Context, ownerUserID string) (*storage.Profile, error)
	CompleteOnboarding(ctx context.Context, ownerUserID string, target int) (*storage.Profile, error)
}

// Service handles food preferences business logic.
type Service struct {
	storage  storage.FoodPrefsStorage
	profiles Onboarding
}

// NewService creates a new food preferences service.
func NewService(st storage.FoodPrefsStorage, profiles Onboarding) *Service {
	return &Service{storage: st, profiles: profiles}
}

// Get returns the owner's selection. Target and completion come from the
// profile; owners without a stored selection get an empty one.
func (s *Service) Get(ctx context.Context, ownerUserID string) (*FoodPrefsDTO, error) {
	profile, err := s.profiles.GetOrCreate(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}

	dto := &FoodPrefsDTO{
		FoodIDs:              []string{},
		DailyCalorieTarget:   profile.DailyCalorieTarget,
		PreferencesCompleted: profile.PreferencesCompleted,
	}

	prefs, err := s.storage.GetFoodPrefs(ctx, ownerUserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return dto, nil
		}
		return nil, err
	}

	dto.FoodIDs = prefs.FoodIDs
	updatedAt := prefs.UpdatedAt
	dto.UpdatedAt = &updatedAt
	return dto, nil
}

// Save replaces the selection, stores the target and marks onboarding done.
func (s *Service) Save(ctx context.Context, ownerUserID string, req SaveFoodPrefsRequest) (*FoodPrefsDTO, error) {
	ids, err := normalizeFoodIDs(req.FoodIDs)
	if err != nil {
		return nil, err
	}

	previous, err := s.storage.GetFoodPrefs(ctx, ownerUserID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("load food preferences: %w", err)
	}

	prefs := &storage.FoodPrefs{OwnerUserID: ownerUserID, FoodIDs: ids}
	if err := s.storage.UpsertFoodPrefs(ctx, prefs); err != nil {
		return nil, fmt.Errorf("save food preferences: %w", err)
	}

	profile, err := s.profiles.CompleteOnboarding(ctx, ownerUserID, req.DailyCalorieTarget)
	if err != nil {
		if rbErr := s.restore(ctx, ownerUserID, previous); rbErr != nil {
			err = errors.Join(err, fmt.Errorf("restore food preferences: %w", rbErr))
		}
		return nil, fmt.Errorf("complete onboarding: %w", err)
	}

	updatedAt := prefs.UpdatedAt
	return &FoodPrefsDTO{
		FoodIDs:              ids,
		DailyCalorieTarget:   profile.DailyCalorieTarget,
		PreferencesCompleted: profile.PreferencesCompleted,
		UpdatedAt:            &updatedAt,
	}, nil
}

// restore puts back the selection that was stored before a failed Save.
func (s *Service) restore(ctx context.Context, ownerUserID string, previous *storage.FoodPrefs) error {
	if previous == nil {
		return s.storage.DeleteFoodPrefs(ctx, ownerUserID)
	}
	return s.storage.UpsertFoodPrefs(ctx, previous)
}

// normalizeFoodIDs trims, dedupes (first occurrence wins) and validates ids.
func normalizeFoodIDs(raw []string) ([]string, error) {
	if len(raw) > maxFoodPrefs {
		return nil, ErrTooManyFoods
	}

	seen := make(map[string]struct{}, len(raw))
	ids := make([]string, 0, len(raw))
	for _, id := range raw {
		id = strings.TrimSpace(id)
		if _, dup := seen[id]; dup {
			continue
		}
		if !IsKnownFood(id) {
			return nil, &UnknownFoodError{FoodID: id}
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
