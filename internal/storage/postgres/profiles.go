package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/fdg312/mealweek/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresProfilesStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresProfilesStorage(pool *pgxpool.Pool) *PostgresProfilesStorage {
	return &PostgresProfilesStorage{pool: pool}
}

func (s *PostgresProfilesStorage) GetProfileByOwner(ctx context.Context, ownerUserID string) (*storage.Profile, error) {
	query := `
		SELECT id, owner_user_id, name, email, daily_calorie_target, preferences_completed, created_at, updated_at
		FROM profiles
		WHERE owner_user_id = $1
	`

	var p storage.Profile
	err := s.pool.QueryRow(ctx, query, ownerUserID).Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&p.Email,
		&p.DailyCalorieTarget,
		&p.PreferencesCompleted,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

func (s *PostgresProfilesStorage) CreateProfile(ctx context.Context, profile *storage.Profile) error {
	query := `
		INSERT INTO profiles (id, owner_user_id, name, email, daily_calorie_target, preferences_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}

	err := s.pool.QueryRow(ctx, query,
		profile.ID,
		profile.OwnerUserID,
		profile.Name,
		profile.Email,
		profile.DailyCalorieTarget,
		profile.PreferencesCompleted,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (s *PostgresProfilesStorage) UpdateProfile(ctx context.Context, profile *storage.Profile) error {
	query := `
		UPDATE profiles
		SET name = $3, email = $4, daily_calorie_target = $5, preferences_completed = $6, updated_at = NOW()
		WHERE id = $1 AND owner_user_id = $2
		RETURNING created_at, updated_at
	`

	err := s.pool.QueryRow(ctx, query,
		profile.ID,
		profile.OwnerUserID,
		profile.Name,
		profile.Email,
		profile.DailyCalorieTarget,
		profile.PreferencesCompleted,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}
