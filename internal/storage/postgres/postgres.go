package postgres

import (
	"context"
	"fmt"

	"github.com/fdg312/mealweek/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage implements storage.Storage on Postgres.
type PostgresStorage struct {
	pool      *pgxpool.Pool
	profiles  *PostgresProfilesStorage
	foodPrefs *PostgresFoodPrefsStorage
	reports   *PostgresReportsStorage
	emailOTPs *PostgresEmailOTPStorage
}

// New opens a pool and verifies the connection.
func New(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresStorage{
		pool:      pool,
		profiles:  NewPostgresProfilesStorage(pool),
		foodPrefs: NewPostgresFoodPrefsStorage(pool),
		reports:   NewPostgresReportsStorage(pool),
		emailOTPs: NewPostgresEmailOTPStorage(pool),
	}, nil
}

func (p *PostgresStorage) Profiles() storage.ProfilesStorage   { return p.profiles }
func (p *PostgresStorage) FoodPrefs() storage.FoodPrefsStorage { return p.foodPrefs }
func (p *PostgresStorage) Reports() storage.ReportsStorage     { return p.reports }
func (p *PostgresStorage) EmailOTPs() storage.EmailOTPStorage  { return p.emailOTPs }

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}
