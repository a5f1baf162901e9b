package reports

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/fdg312/mealweek/internal/mealplans"
	"github.com/fdg312/mealweek/internal/selection"
	"github.com/fdg312/mealweek/internal/userctx"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	service *Service
}

func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleCreate handles POST /v1/reports
func (h *Handlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON")
		return
	}
	if req.DayID == "" {
		writeError(w, http.StatusBadRequest, "missing_day_id", "day_id is required")
		return
	}

	ctx := r.Context()
	report, err := h.service.CreateReport(ctx, userctx.OwnerUserID(ctx), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	dto, err := h.toDTO(r, report)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

// HandleList handles GET /v1/reports?limit=&offset=
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be between 1 and 100")
			return
		}
		limit = n
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid_offset", "offset must be a non-negative integer")
			return
		}
		offset = n
	}

	ctx := r.Context()
	list, err := h.service.ListReports(ctx, userctx.OwnerUserID(ctx), limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := ReportsResponse{Reports: make([]ReportDTO, 0, len(list))}
	for i := range list {
		dto, err := h.toDTO(r, &list[i])
		if err != nil {
			writeServiceError(w, err)
			return
		}
		resp.Reports = append(resp.Reports, dto)
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleDownload handles GET /v1/reports/{id}/download. Inline reports are
// streamed, stored objects are redirected to.
func (h *Handlers) HandleDownload(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	data, contentType, redirect, err := h.service.Download(ctx, userctx.OwnerUserID(ctx), id, getBaseURL(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if redirect != "" {
		http.Redirect(w, r, redirect, http.StatusFound)
		return
	}

	report, err := h.service.GetReport(ctx, userctx.OwnerUserID(ctx), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeFile(w, contentType, fmt.Sprintf("plano_%s_%s.%s", report.DayID, report.ID.String()[:8], report.Format), data)
}

// HandleDelete handles DELETE /v1/reports/{id}
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	if err := h.service.DeleteReport(ctx, userctx.OwnerUserID(ctx), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandlePrintDay handles GET /v1/plan/days/{day}/print?format=&session_id=
// and streams the rendition without storing it.
func (h *Handlers) HandlePrintDay(w http.ResponseWriter, r *http.Request) {
	dayID := r.PathValue("day")
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = FormatPDF
	}

	var sessionID *uuid.UUID
	if v := r.URL.Query().Get("session_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_session_id", "Invalid session id")
			return
		}
		sessionID = &id
	}

	ctx := r.Context()
	data, contentType, view, err := h.service.Render(ctx, userctx.OwnerUserID(ctx), dayID, sessionID, format)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeFile(w, contentType, fmt.Sprintf("plano_%s.%s", view.DayID, format), data)
}

func (h *Handlers) toDTO(r *http.Request, report *Report) (ReportDTO, error) {
	dto := ReportDTO{
		ID:        report.ID,
		DayID:     report.DayID,
		Format:    report.Format,
		OptionIDs: report.OptionIDs,
		SizeBytes: report.SizeBytes,
		Status:    report.Status,
		ExpiresAt: report.ExpiresAt,
		CreatedAt: report.CreatedAt,
	}
	if dto.OptionIDs == nil {
		dto.OptionIDs = []string{}
	}
	if report.Status != StatusReady {
		return dto, nil
	}
	url, err := h.service.DownloadURL(r.Context(), report, getBaseURL(r))
	if err != nil {
		return ReportDTO{}, err
	}
	dto.DownloadURL = url
	return dto, nil
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "Invalid report id")
		return uuid.Nil, false
	}
	return id, true
}

func getBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidFormat):
		writeError(w, http.StatusBadRequest, "invalid_format", "Format must be 'pdf' or 'csv'")
	case errors.Is(err, mealplans.ErrUnknownDay):
		writeError(w, http.StatusNotFound, "unknown_day", "Unknown day")
	case errors.Is(err, selection.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session_not_found", "Session not found or expired")
	case errors.Is(err, ErrReportNotFound):
		writeError(w, http.StatusNotFound, "report_not_found", "Report not found")
	case errors.Is(err, ErrReportExpired):
		writeError(w, http.StatusGone, "report_expired", "Report expired")
	case errors.Is(err, ErrReportFailed):
		writeError(w, http.StatusConflict, "report_failed", "Report is not available")
	default:
		log.Error().Err(err).Msg("reports request failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
}

func writeFile(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
