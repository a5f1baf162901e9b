package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fdg312/mealweek/internal/blob"
	"github.com/fdg312/mealweek/internal/config"
	"github.com/fdg312/mealweek/internal/mealplans"
	"github.com/fdg312/mealweek/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidFormat  = errors.New("invalid format: must be pdf or csv")
	ErrReportNotFound = errors.New("report not found")
	ErrReportExpired  = errors.New("report expired")
	ErrReportFailed   = errors.New("report rendering failed")
)

// DayResolver yields the day view a report is rendered from.
type DayResolver interface {
	Resolve(ctx context.Context, ownerUserID, dayID string, sessionID *uuid.UUID) (*mealplans.DayViewDTO, error)
}

type Service struct {
	reports         storage.ReportsStorage
	plans           DayResolver
	generator       *Generator
	blobStore       blob.Store // nil: content is kept inline
	presignTTL      time.Duration
	publicBaseURL   string
	preferPublicURL bool
	ttl             time.Duration
	now             func() time.Time
}

func NewService(reports storage.ReportsStorage, plans DayResolver, blobStore blob.Store, s3cfg config.S3Config, ttlHours int) *Service {
	if ttlHours <= 0 {
		ttlHours = 168
	}
	presign := s3cfg.PresignTTLSeconds
	if presign <= 0 {
		presign = 900
	}
	return &Service{
		reports:         reports,
		plans:           plans,
		generator:       NewGenerator(),
		blobStore:       blobStore,
		presignTTL:      time.Duration(presign) * time.Second,
		publicBaseURL:   s3cfg.PublicBaseURL,
		preferPublicURL: s3cfg.PreferPublicURL,
		ttl:             time.Duration(ttlHours) * time.Hour,
		now:             time.Now,
	}
}

// LocalMode reports whether rendered files live in the reports table.
func (s *Service) LocalMode() bool {
	return s.blobStore == nil
}

// Render resolves and renders a day without storing anything.
func (s *Service) Render(ctx context.Context, ownerUserID, dayID string, sessionID *uuid.UUID, format string) ([]byte, string, *mealplans.DayViewDTO, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != FormatPDF && format != FormatCSV {
		return nil, "", nil, ErrInvalidFormat
	}
	view, err := s.plans.Resolve(ctx, ownerUserID, dayID, sessionID)
	if err != nil {
		return nil, "", nil, err
	}
	data, contentType, err := s.generator.Render(view, format)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to generate report: %w", err)
	}
	return data, contentType, view, nil
}

func (s *Service) CreateReport(ctx context.Context, ownerUserID string, req CreateReportRequest) (*Report, error) {
	format := strings.ToLower(strings.TrimSpace(req.Format))
	data, contentType, view, err := s.Render(ctx, ownerUserID, req.DayID, req.SessionID, format)
	if err != nil {
		return nil, err
	}

	optionIDs := make([]string, 0, len(view.Meals))
	for _, m := range view.Meals {
		optionIDs = append(optionIDs, m.OptionID)
	}

	meta := &storage.ReportMeta{
		ID:          uuid.New(),
		OwnerUserID: ownerUserID,
		DayID:       view.DayID,
		Format:      format,
		OptionIDs:   optionIDs,
		SizeBytes:   int64(len(data)),
		Status:      StatusReady,
		ExpiresAt:   s.now().Add(s.ttl),
	}

	var uploadErr error
	if s.blobStore == nil {
		meta.Data = data
	} else {
		key := blob.ReportKey(ownerUserID, view.DayID, meta.ID.String(), format)
		if _, uploadErr = s.blobStore.PutObject(ctx, key, data, contentType); uploadErr != nil {
			msg := uploadErr.Error()
			meta.Status = StatusFailed
			meta.Error = &msg
			meta.SizeBytes = 0
			log.Warn().Err(uploadErr).Str("report_id", meta.ID.String()).Msg("report upload failed")
		} else {
			meta.ObjectKey = &key
		}
	}

	if err := s.reports.CreateReport(ctx, meta); err != nil {
		return nil, fmt.Errorf("failed to save report metadata: %w", err)
	}
	if uploadErr != nil {
		return nil, fmt.Errorf("failed to upload report: %w", uploadErr)
	}
	return toReport(meta), nil
}

// GetReport hides reports of other owners behind ErrReportNotFound.
func (s *Service) GetReport(ctx context.Context, ownerUserID string, id uuid.UUID) (*Report, error) {
	meta, err := s.ownedReport(ctx, ownerUserID, id)
	if err != nil {
		return nil, err
	}
	return toReport(meta), nil
}

func (s *Service) ListReports(ctx context.Context, ownerUserID string, limit, offset int) ([]Report, error) {
	metas, err := s.reports.ListReports(ctx, ownerUserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	out := make([]Report, len(metas))
	for i := range metas {
		out[i] = *toReport(&metas[i])
	}
	return out, nil
}

func (s *Service) DeleteReport(ctx context.Context, ownerUserID string, id uuid.UUID) error {
	meta, err := s.ownedReport(ctx, ownerUserID, id)
	if err != nil {
		return err
	}

	if s.blobStore != nil && meta.ObjectKey != nil {
		if err := s.blobStore.DeleteObject(ctx, *meta.ObjectKey); err != nil {
			log.Warn().Err(err).Str("key", *meta.ObjectKey).Msg("failed to delete report object")
		}
	}

	if err := s.reports.DeleteReport(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrReportNotFound
		}
		return fmt.Errorf("failed to delete report metadata: %w", err)
	}
	return nil
}

// DownloadURL returns the API download path in local mode, otherwise a
// public or presigned object URL.
func (s *Service) DownloadURL(ctx context.Context, report *Report, baseURL string) (string, error) {
	if s.blobStore == nil || report.ObjectKey == nil {
		return fmt.Sprintf("%s/v1/reports/%s/download", strings.TrimSuffix(baseURL, "/"), report.ID), nil
	}
	if s.preferPublicURL && s.publicBaseURL != "" {
		return strings.TrimSuffix(s.publicBaseURL, "/") + "/" + *report.ObjectKey, nil
	}
	url, err := s.blobStore.PresignGet(ctx, *report.ObjectKey, s.presignTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url, nil
}

// Download checks that the report may be served. Exactly one of data and
// redirect is set on success.
func (s *Service) Download(ctx context.Context, ownerUserID string, id uuid.UUID, baseURL string) (data []byte, contentType, redirect string, err error) {
	meta, err := s.ownedReport(ctx, ownerUserID, id)
	if err != nil {
		return nil, "", "", err
	}
	if meta.Status != StatusReady {
		return nil, "", "", ErrReportFailed
	}
	if !s.now().Before(meta.ExpiresAt) {
		return nil, "", "", ErrReportExpired
	}

	if s.blobStore == nil || meta.ObjectKey == nil {
		return meta.Data, contentTypeFor(meta.Format), "", nil
	}
	url, err := s.DownloadURL(ctx, toReport(meta), baseURL)
	if err != nil {
		return nil, "", "", err
	}
	return nil, "", url, nil
}

func (s *Service) ownedReport(ctx context.Context, ownerUserID string, id uuid.UUID) (*storage.ReportMeta, error) {
	meta, err := s.reports.GetReport(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	if meta.OwnerUserID != ownerUserID {
		return nil, ErrReportNotFound
	}
	return meta, nil
}

func toReport(meta *storage.ReportMeta) *Report {
	return &Report{
		ID:          meta.ID,
		OwnerUserID: meta.OwnerUserID,
		DayID:       meta.DayID,
		Format:      meta.Format,
		OptionIDs:   meta.OptionIDs,
		ObjectKey:   meta.ObjectKey,
		SizeBytes:   meta.SizeBytes,
		Status:      meta.Status,
		Error:       meta.Error,
		ExpiresAt:   meta.ExpiresAt,
		CreatedAt:   meta.CreatedAt,
		Data:        meta.Data,
	}
}
