package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fdg312/mealweek/internal/storage"
	"github.com/google/uuid"
)

// EmailOTPMemoryStorage keeps one-time codes in memory.
type EmailOTPMemoryStorage struct {
	mu      sync.RWMutex
	records map[uuid.UUID]storage.EmailOTP
}

func NewEmailOTPMemoryStorage() *EmailOTPMemoryStorage {
	return &EmailOTPMemoryStorage{records: make(map[uuid.UUID]storage.EmailOTP)}
}

func (s *EmailOTPMemoryStorage) CreateOrReplace(ctx context.Context, email, codeHash string, expiresAt, now time.Time, maxAttempts int) (uuid.UUID, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if maxAttempts <= 0 {
		maxAttempts = 5
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, row := range s.records {
		if row.Email == email && row.ExpiresAt.After(now) {
			delete(s.records, id)
		}
	}

	id := uuid.New()
	s.records[id] = storage.EmailOTP{
		ID:          id,
		Email:       email,
		CodeHash:    codeHash,
		CreatedAt:   now,
		ExpiresAt:   expiresAt,
		MaxAttempts: maxAttempts,
		LastSentAt:  now,
		SendCount:   1,
	}
	return id, nil
}

func (s *EmailOTPMemoryStorage) GetLatestActive(ctx context.Context, email string, now time.Time) (*storage.EmailOTP, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *storage.EmailOTP
	for _, row := range s.records {
		if row.Email != email || !row.ExpiresAt.After(now) {
			continue
		}
		if latest == nil || row.CreatedAt.After(latest.CreatedAt) {
			r := row
			latest = &r
		}
	}
	return latest, nil
}

func (s *EmailOTPMemoryStorage) IncrementAttempts(ctx context.Context, id uuid.UUID) error {
	s.update(id, func(r *storage.EmailOTP) { r.Attempts++ })
	return nil
}

func (s *EmailOTPMemoryStorage) Consume(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

func (s *EmailOTPMemoryStorage) UpdateResendMeta(ctx context.Context, id uuid.UUID, lastSentAt time.Time, sendCount int) error {
	s.update(id, func(r *storage.EmailOTP) {
		r.LastSentAt = lastSentAt
		r.SendCount = sendCount
	})
	return nil
}

func (s *EmailOTPMemoryStorage) update(id uuid.UUID, fn func(*storage.EmailOTP)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.records[id]
	if !ok {
		return
	}
	fn(&row)
	s.records[id] = row
}
