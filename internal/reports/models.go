package reports

import (
	"time"

	"github.com/google/uuid"
)

const (
	FormatPDF = "pdf"
	FormatCSV = "csv"

	StatusReady  = "ready"
	StatusFailed = "failed"
)

// CreateReportRequest asks for a printed day. SessionID is honoured only
// when the session is currently on DayID.
type CreateReportRequest struct {
	DayID     string     `json:"day_id"`
	SessionID *uuid.UUID `json:"session_id,omitempty"`
	Format    string     `json:"format"`
}

// Report is a stored rendition of a day.
type Report struct {
	ID          uuid.UUID
	OwnerUserID string
	DayID       string
	Format      string
	OptionIDs   []string
	ObjectKey   *string
	SizeBytes   int64
	Status      string
	Error       *string
	ExpiresAt   time.Time
	CreatedAt   time.Time
	Data        []byte
}

type ReportDTO struct {
	ID          uuid.UUID `json:"id"`
	DayID       string    `json:"day_id"`
	Format      string    `json:"format"`
	OptionIDs   []string  `json:"option_ids"`
	DownloadURL string    `json:"download_url"`
	SizeBytes   int64     `json:"size_bytes"`
	Status      string    `json:"status"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

type ReportsResponse struct {
	Reports []ReportDTO `json:"reports"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func contentTypeFor(format string) string {
	if format == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/pdf"
}
