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

// PostgresReportsStorage stores report metadata. Inline content
// (local blob mode) goes to the data column.
type PostgresReportsStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresReportsStorage(pool *pgxpool.Pool) *PostgresReportsStorage {
	return &PostgresReportsStorage{pool: pool}
}

func (s *PostgresReportsStorage) CreateReport(ctx context.Context, report *storage.ReportMeta) error {
	query := `
		INSERT INTO reports (id, owner_user_id, day_id, format, option_ids, object_key, size_bytes, status, error, data, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}

	err := s.pool.QueryRow(ctx, query,
		report.ID,
		report.OwnerUserID,
		report.DayID,
		report.Format,
		report.OptionIDs,
		report.ObjectKey,
		report.SizeBytes,
		report.Status,
		report.Error,
		report.Data,
		report.ExpiresAt,
	).Scan(&report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (s *PostgresReportsStorage) GetReport(ctx context.Context, id uuid.UUID) (*storage.ReportMeta, error) {
	query := `
		SELECT id, owner_user_id, day_id, format, option_ids, object_key, size_bytes, status, error, data, expires_at, created_at, updated_at
		FROM reports
		WHERE id = $1
	`

	var r storage.ReportMeta
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&r.ID,
		&r.OwnerUserID,
		&r.DayID,
		&r.Format,
		&r.OptionIDs,
		&r.ObjectKey,
		&r.SizeBytes,
		&r.Status,
		&r.Error,
		&r.Data,
		&r.ExpiresAt,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &r, nil
}

func (s *PostgresReportsStorage) ListReports(ctx context.Context, ownerUserID string, limit, offset int) ([]storage.ReportMeta, error) {
	query := `
		SELECT id, owner_user_id, day_id, format, option_ids, object_key, size_bytes, status, error, expires_at, created_at, updated_at
		FROM reports
		WHERE owner_user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.pool.Query(ctx, query, ownerUserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := []storage.ReportMeta{}
	for rows.Next() {
		var r storage.ReportMeta
		if err := rows.Scan(
			&r.ID,
			&r.OwnerUserID,
			&r.DayID,
			&r.Format,
			&r.OptionIDs,
			&r.ObjectKey,
			&r.SizeBytes,
			&r.Status,
			&r.Error,
			&r.ExpiresAt,
			&r.CreatedAt,
			&r.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}
	return reports, nil
}

func (s *PostgresReportsStorage) DeleteReport(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
