package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/fdg312/mealweek/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresFoodPrefsStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresFoodPrefsStorage(pool *pgxpool.Pool) *PostgresFoodPrefsStorage {
	return &PostgresFoodPrefsStorage{pool: pool}
}

func (s *PostgresFoodPrefsStorage) GetFoodPrefs(ctx context.Context, ownerUserID string) (*storage.FoodPrefs, error) {
	query := `
		SELECT owner_user_id, food_ids, updated_at
		FROM food_preferences
		WHERE owner_user_id = $1
	`

	var p storage.FoodPrefs
	err := s.pool.QueryRow(ctx, query, ownerUserID).Scan(&p.OwnerUserID, &p.FoodIDs, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get food preferences: %w", err)
	}
	if p.FoodIDs == nil {
		p.FoodIDs = []string{}
	}
	return &p, nil
}

func (s *PostgresFoodPrefsStorage) UpsertFoodPrefs(ctx context.Context, prefs *storage.FoodPrefs) error {
	query := `
		INSERT INTO food_preferences (owner_user_id, food_ids, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (owner_user_id)
		DO UPDATE SET food_ids = EXCLUDED.food_ids, updated_at = NOW()
		RETURNING updated_at
	`

	ids := prefs.FoodIDs
	if ids == nil {
		ids = []string{}
	}
	if err := s.pool.QueryRow(ctx, query, prefs.OwnerUserID, ids).Scan(&prefs.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert food preferences: %w", err)
	}
	return nil
}

func (s *PostgresFoodPrefsStorage) DeleteFoodPrefs(ctx context.Context, ownerUserID string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM food_preferences WHERE owner_user_id = $1`, ownerUserID); err != nil {
		return fmt.Errorf("failed to delete food preferences: %w", err)
	}
	return nil
}
