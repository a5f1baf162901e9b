package profiles

import (
	"context"
	"errors"
	"strings"

	"github.com/fdg312/mealweek/internal/nutrition"
	"github.com/fdg312/mealweek/internal/storage"
	"github.com/fdg312/mealweek/internal/userctx"
)

var (
	ErrEmptyName    = errors.New("name cannot be empty")
	ErrInvalidEmail = errors.New("invalid email")
)

const defaultName = "Eu"

// Service manages profiles.
type Service struct {
	storage       storage.ProfilesStorage
	defaultTarget int
}

// NewService creates a profile service. defaultTarget is used for new profiles.
func NewService(st storage.ProfilesStorage, defaultTarget int) *Service {
	return &Service{
		storage:       st,
		defaultTarget: nutrition.ClampCalorieTarget(defaultTarget),
	}
}

// GetOrCreate returns the owner's profile, creating it on first access.
func (s *Service) GetOrCreate(ctx context.Context, ownerUserID string) (*storage.Profile, error) {
	profile, err := s.storage.GetProfileByOwner(ctx, ownerUserID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	profile = &storage.Profile{
		OwnerUserID:        ownerUserID,
		Name:               defaultName,
		DailyCalorieTarget: s.defaultTarget,
	}
	if err := s.storage.CreateProfile(ctx, profile); err != nil {
		// Another request may have created it in between.
		if existing, getErr := s.storage.GetProfileByOwner(ctx, ownerUserID); getErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return profile, nil
}

// EnsureProfile creates the profile on sign-in and records the email if
// the profile has none yet.
func (s *Service) EnsureProfile(ctx context.Context, ownerUserID, email string) error {
	profile, err := s.GetOrCreate(ctx, ownerUserID)
	if err != nil {
		return err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || profile.Email != "" {
		return nil
	}
	profile.Email = email
	return s.storage.UpdateProfile(ctx, profile)
}

// CalorieTarget returns the owner's daily target, falling back to the
// configured default when no profile exists yet.
func (s *Service) CalorieTarget(ctx context.Context, ownerUserID string) (int, error) {
	profile, err := s.storage.GetProfileByOwner(ctx, ownerUserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return s.defaultTarget, nil
		}
		return 0, err
	}
	return nutrition.ClampCalorieTarget(profile.DailyCalorieTarget), nil
}

// CompleteOnboarding stores the target chosen during food-preference
// onboarding and marks the profile as onboarded.
func (s *Service) CompleteOnboarding(ctx context.Context, ownerUserID string, target int) (*storage.Profile, error) {
	profile, err := s.GetOrCreate(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}

	profile.DailyCalorieTarget = nutrition.ClampCalorieTarget(target)
	profile.PreferencesCompleted = true
	if err := s.storage.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetMe returns the current owner's profile.
func (s *Service) GetMe(ctx context.Context) (*ProfileDTO, error) {
	profile, err := s.GetOrCreate(ctx, userctx.OwnerUserID(ctx))
	if err != nil {
		return nil, err
	}

	dto := toDTO(*profile)
	return &dto, nil
}

// UpdateMe applies a partial update to the current owner's profile.
func (s *Service) UpdateMe(ctx context.Context, req UpdateProfileRequest) (*ProfileDTO, error) {
	profile, err := s.GetOrCreate(ctx, userctx.OwnerUserID(ctx))
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		profile.Name = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != "" && !looksLikeEmail(email) {
			return nil, ErrInvalidEmail
		}
		profile.Email = email
	}
	if req.DailyCalorieTarget != nil {
		profile.DailyCalorieTarget = nutrition.ClampCalorieTarget(*req.DailyCalorieTarget)
	}

	if err := s.storage.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}

	dto := toDTO(*profile)
	return &dto, nil
}

func toDTO(p storage.Profile) ProfileDTO {
	return ProfileDTO{
		ID:                   p.ID,
		OwnerUserID:          p.OwnerUserID,
		Name:                 p.Name,
		Email:                p.Email,
		DailyCalorieTarget:   nutrition.ClampCalorieTarget(p.DailyCalorieTarget),
		PreferencesCompleted: p.PreferencesCompleted,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func looksLikeEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}
