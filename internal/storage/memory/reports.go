package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fdg312/mealweek/internal/storage"
	"github.com/google/uuid"
)

// ReportsMemoryStorage keeps report metadata and inline content in memory.
type ReportsMemoryStorage struct {
	mu      sync.RWMutex
	reports map[uuid.UUID]*storage.ReportMeta
}

func NewReportsMemoryStorage() *ReportsMemoryStorage {
	return &ReportsMemoryStorage{
		reports: make(map[uuid.UUID]*storage.ReportMeta),
	}
}

func (s *ReportsMemoryStorage) CreateReport(ctx context.Context, report *storage.ReportMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	now := time.Now().UTC()
	report.CreatedAt = now
	report.UpdatedAt = now

	stored := *report
	s.reports[report.ID] = &stored
	return nil
}

func (s *ReportsMemoryStorage) GetReport(ctx context.Context, id uuid.UUID) (*storage.ReportMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, ok := s.reports[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := *report
	return &out, nil
}

func (s *ReportsMemoryStorage) ListReports(ctx context.Context, ownerUserID string, limit, offset int) ([]storage.ReportMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := []storage.ReportMeta{}
	for _, r := range s.reports {
		if r.OwnerUserID == ownerUserID {
			meta := *r
			meta.Data = nil
			filtered = append(filtered, meta)
		}
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	if offset >= len(filtered) {
		return []storage.ReportMeta{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], nil
}

func (s *ReportsMemoryStorage) DeleteReport(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reports[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.reports, id)
	return nil
}
