package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fdg312/mealweek/internal/storage"
	"github.com/google/uuid"
)

type ProfilesMemoryStorage struct {
	mu      sync.RWMutex
	byOwner map[string]storage.Profile
}

func NewProfilesMemoryStorage() *ProfilesMemoryStorage {
	return &ProfilesMemoryStorage{byOwner: make(map[string]storage.Profile)}
}

func (s *ProfilesMemoryStorage) GetProfileByOwner(ctx context.Context, ownerUserID string) (*storage.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byOwner[ownerUserID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &p, nil
}

func (s *ProfilesMemoryStorage) CreateProfile(ctx context.Context, profile *storage.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byOwner[profile.OwnerUserID]; exists {
		return fmt.Errorf("profile for owner %q already exists", profile.OwnerUserID)
	}
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	s.byOwner[profile.OwnerUserID] = *profile
	return nil
}

func (s *ProfilesMemoryStorage) UpdateProfile(ctx context.Context, profile *storage.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byOwner[profile.OwnerUserID]
	if !ok || existing.ID != profile.ID {
		return storage.ErrNotFound
	}
	profile.CreatedAt = existing.CreatedAt
	profile.UpdatedAt = time.Now().UTC()
	s.byOwner[profile.OwnerUserID] = *profile
	return nil
}
