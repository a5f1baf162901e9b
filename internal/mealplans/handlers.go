package mealplans

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/fdg312/mealweek/internal/selection"
	"github.com/fdg312/mealweek/internal/userctx"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Handler handles HTTP requests for the week plan.
type Handler struct {
	service *Service
}

// NewHandler creates a new meal plans handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleWeek handles GET /v1/plan/week
func (h *Handler) HandleWeek(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Week())
}

// HandleSlots handles GET /v1/plan/slots
func (h *Handler) HandleSlots(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Slots())
}

// HandleDay handles GET /v1/plan/days/{day}
func (h *Handler) HandleDay(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.DefaultView(r.Context(), userctx.OwnerUserID(r.Context()), r.PathValue("day"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleCreateSession handles POST /v1/plan/sessions
func (h *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	view, err := h.service.CreateSession(r.Context(), userctx.OwnerUserID(r.Context()), req.DayID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// HandleGetSession handles GET /v1/plan/sessions/{id}
func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.service.GetSession(r.Context(), userctx.OwnerUserID(r.Context()), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleSwitchDay handles PUT /v1/plan/sessions/{id}/day
func (h *Handler) HandleSwitchDay(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req SwitchDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DayID == "" {
		writeError(w, http.StatusBadRequest, "invalid_payload", "day_id is required")
		return
	}

	view, err := h.service.SwitchDay(r.Context(), userctx.OwnerUserID(r.Context()), id, req.DayID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleSelectOption handles PUT /v1/plan/sessions/{id}/selections/{slot}
func (h *Handler) HandleSelectOption(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req SelectOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	view, err := h.service.SelectOption(r.Context(), userctx.OwnerUserID(r.Context()), id, r.PathValue("slot"), req.OptionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleCycle handles POST /v1/plan/sessions/{id}/selections/{slot}/cycle
func (h *Handler) HandleCycle(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req CycleRequest
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	view, err := h.service.Cycle(r.Context(), userctx.OwnerUserID(r.Context()), id, r.PathValue("slot"), req.Step)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleDeleteSession handles DELETE /v1/plan/sessions/{id}
func (h *Handler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteSession(userctx.OwnerUserID(r.Context()), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "Invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}

// decodeOptional accepts an empty body as the zero value.
func decodeOptional(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeServiceError(w http.ResponseWriter, err error) {
	var invalid *selection.InvalidOptionError
	switch {
	case errors.As(err, &invalid):
		writeError(w, http.StatusBadRequest, "invalid_option", invalid.Error())
	case errors.Is(err, selection.ErrUnknownSlot):
		writeError(w, http.StatusBadRequest, "unknown_slot", "Unknown meal slot")
	case errors.Is(err, ErrUnknownDay):
		writeError(w, http.StatusNotFound, "unknown_day", "Unknown day")
	case errors.Is(err, selection.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session_not_found", "Session not found or expired")
	default:
		log.Error().Err(err).Msg("meal plan request failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
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
