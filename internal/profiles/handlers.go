package profiles

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Handler serves the profile endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates a profile handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleGetMe handles GET /v1/profiles/me.
func (h *Handler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetMe(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("get profile failed")
		h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to load profile")
		return
	}

	h.sendJSON(w, http.StatusOK, profile)
}

// HandleUpdateMe handles PATCH /v1/profiles/me.
func (h *Handler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON")
		return
	}

	profile, err := h.service.UpdateMe(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyName):
			h.sendError(w, http.StatusBadRequest, "empty_name", "Name cannot be empty")
		case errors.Is(err, ErrInvalidEmail):
			h.sendError(w, http.StatusBadRequest, "invalid_email", "Invalid email format")
		default:
			log.Error().Err(err).Msg("update profile failed")
			h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to update profile")
		}
		return
	}

	h.sendJSON(w, http.StatusOK, profile)
}

func (h *Handler) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// sendError writes an ErrorResponse.
func (h *Handler) sendError(w http.ResponseWriter, status int, code, message string) {
	h.sendJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
