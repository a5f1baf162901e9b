package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fdg312/mealweek/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresEmailOTPStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresEmailOTPStorage(pool *pgxpool.Pool) *PostgresEmailOTPStorage {
	return &PostgresEmailOTPStorage{pool: pool}
}

// CreateOrReplace drops the active codes for email and inserts a new one in
// a single transaction.
func (s *PostgresEmailOTPStorage) CreateOrReplace(ctx context.Context, email, codeHash string, expiresAt, now time.Time, maxAttempts int) (uuid.UUID, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if maxAttempts <= 0 {
		maxAttempts = 5
	}

	var id uuid.UUID
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM email_otps WHERE email = $1 AND expires_at > $2`, email, now); err != nil {
			return err
		}
		id = uuid.New()
		_, err := tx.Exec(ctx, `
			INSERT INTO email_otps (id, email, code_hash, created_at, expires_at, attempts, max_attempts, last_sent_at, send_count)
			VALUES ($1, $2, $3, $4, $5, 0, $6, $4, 1)
		`, id, email, codeHash, now, expiresAt, maxAttempts)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (s *PostgresEmailOTPStorage) GetLatestActive(ctx context.Context, email string, now time.Time) (*storage.EmailOTP, error) {
	query := `
		SELECT id, email, code_hash, created_at, expires_at, attempts, max_attempts, last_sent_at, send_count
		FROM email_otps
		WHERE email = $1 AND expires_at > $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	var row storage.EmailOTP
	err := s.pool.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(email)), now).Scan(
		&row.ID,
		&row.Email,
		&row.CodeHash,
		&row.CreatedAt,
		&row.ExpiresAt,
		&row.Attempts,
		&row.MaxAttempts,
		&row.LastSentAt,
		&row.SendCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (s *PostgresEmailOTPStorage) IncrementAttempts(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `UPDATE email_otps SET attempts = attempts + 1 WHERE id = $1`, id)
	return err
}

func (s *PostgresEmailOTPStorage) Consume(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM email_otps WHERE id = $1`, id)
	return err
}

func (s *PostgresEmailOTPStorage) UpdateResendMeta(ctx context.Context, id uuid.UUID, lastSentAt time.Time, sendCount int) error {
	_, err := s.pool.Exec(ctx, `UPDATE email_otps SET last_sent_at = $2, send_count = $3 WHERE id = $1`, id, lastSentAt, sendCount)
	return err
}
