package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a record is missing or belongs to another owner.
var ErrNotFound = errors.New("not found")

// Profile is a user profile with a daily calorie target.
type Profile struct {
	ID                   uuid.UUID
	OwnerUserID          string
	Name                 string
	Email                string
	DailyCalorieTarget   int
	PreferencesCompleted bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ProfilesStorage persists profiles.
type ProfilesStorage interface {
	// GetProfileByOwner returns the owner's profile or ErrNotFound.
	GetProfileByOwner(ctx context.Context, ownerUserID string) (*Profile, error)

	// CreateProfile inserts a profile and fills ID and timestamps when empty.
	CreateProfile(ctx context.Context, profile *Profile) error

	// UpdateProfile writes name, email, target and the onboarding flag.
	UpdateProfile(ctx context.Context, profile *Profile) error
}

// FoodPrefs are the foods picked during onboarding.
type FoodPrefs struct {
	OwnerUserID string
	FoodIDs     []string
	UpdatedAt   time.Time
}

// FoodPrefsStorage persists food preferences.
type FoodPrefsStorage interface {
	// GetFoodPrefs returns ErrNotFound when the owner has not onboarded yet.
	GetFoodPrefs(ctx context.Context, ownerUserID string) (*FoodPrefs, error)

	// UpsertFoodPrefs replaces the whole selection for the owner.
	UpsertFoodPrefs(ctx context.Context, prefs *FoodPrefs) error

	// DeleteFoodPrefs removes the owner's selection. Missing rows are not an error.
	DeleteFoodPrefs(ctx context.Context, ownerUserID string) error
}

// ReportMeta describes a printed day (PDF or CSV).
type ReportMeta struct {
	ID          uuid.UUID
	OwnerUserID string
	DayID       string
	Format      string   // "pdf" or "csv"
	OptionIDs   []string // selected option per slot, in slot order
	ObjectKey   *string  // S3 object key (nil when stored inline)
	SizeBytes   int64
	Status      string // "ready" or "failed"
	Error       *string
	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Data        []byte // inline content when no blob store is configured
}

// ReportsStorage persists report metadata.
type ReportsStorage interface {
	CreateReport(ctx context.Context, report *ReportMeta) error

	// GetReport returns ErrNotFound for unknown ids.
	GetReport(ctx context.Context, id uuid.UUID) (*ReportMeta, error)

	// ListReports returns the owner's reports, newest first.
	ListReports(ctx context.Context, ownerUserID string, limit, offset int) ([]ReportMeta, error)

	DeleteReport(ctx context.Context, id uuid.UUID) error
}

// EmailOTPStorage persists email sign-in codes.
type EmailOTPStorage interface {
	// CreateOrReplace stores a new active code and drops the previous active one for email.
	CreateOrReplace(ctx context.Context, email, codeHash string, expiresAt, now time.Time, maxAttempts int) (uuid.UUID, error)

	// GetLatestActive returns the newest unexpired code, or nil.
	GetLatestActive(ctx context.Context, email string, now time.Time) (*EmailOTP, error)

	IncrementAttempts(ctx context.Context, id uuid.UUID) error

	// Consume deletes a used code.
	Consume(ctx context.Context, id uuid.UUID) error

	UpdateResendMeta(ctx context.Context, id uuid.UUID, lastSentAt time.Time, sendCount int) error
}

// EmailOTP is one stored sign-in code.
type EmailOTP struct {
	ID          uuid.UUID
	Email       string
	CodeHash    string
	CreatedAt   time.Time
	ExpiresAt   time.Time
	Attempts    int
	MaxAttempts int
	LastSentAt  time.Time
	SendCount   int
}

// Storage aggregates every store the server needs.
type Storage interface {
	Profiles() ProfilesStorage
	FoodPrefs() FoodPrefsStorage
	Reports() ReportsStorage
	EmailOTPs() EmailOTPStorage
	Close() error
}
