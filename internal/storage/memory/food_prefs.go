package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/fdg312/mealweek/internal/storage"
)

type FoodPrefsMemoryStorage struct {
	mu    sync.RWMutex
	prefs map[string]storage.FoodPrefs
}

func NewFoodPrefsMemoryStorage() *FoodPrefsMemoryStorage {
	return &FoodPrefsMemoryStorage{prefs: make(map[string]storage.FoodPrefs)}
}

func (s *FoodPrefsMemoryStorage) GetFoodPrefs(ctx context.Context, ownerUserID string) (*storage.FoodPrefs, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.prefs[ownerUserID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	p.FoodIDs = slices.Clone(p.FoodIDs)
	return &p, nil
}

func (s *FoodPrefsMemoryStorage) UpsertFoodPrefs(ctx context.Context, prefs *storage.FoodPrefs) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs.UpdatedAt = time.Now().UTC()
	stored := *prefs
	stored.FoodIDs = slices.Clone(prefs.FoodIDs)
	s.prefs[prefs.OwnerUserID] = stored
	return nil
}

func (s *FoodPrefsMemoryStorage) DeleteFoodPrefs(ctx context.Context, ownerUserID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.prefs, ownerUserID)
	return nil
}
