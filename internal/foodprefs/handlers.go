package foodprefs

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fdg312/mealweek/internal/userctx"
	"github.com/rs/zerolog/log"
)

// Handler handles HTTP requests for food preferences.
type Handler struct {
	service *Service
}

// NewHandler creates a new food preferences handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleCategories handles GET /v1/food-prefs/categories?q=
func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CategoriesResponse{Categories: Categories(r.URL.Query().Get("q"))})
}

// HandleGet handles GET /v1/food-prefs
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.service.Get(r.Context(), userctx.OwnerUserID(r.Context()))
	if err != nil {
		log.Error().Err(err).Msg("get food preferences failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to load food preferences")
		return
	}

	writeJSON(w, http.StatusOK, prefs)
}

// HandleSave handles PUT /v1/food-prefs
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req SaveFoodPrefsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	prefs, err := h.service.Save(r.Context(), userctx.OwnerUserID(r.Context()), req)
	if err != nil {
		var unknown *UnknownFoodError
		switch {
		case errors.As(err, &unknown):
			writeError(w, http.StatusBadRequest, "unknown_food", unknown.Error())
		case errors.Is(err, ErrTooManyFoods):
			writeError(w, http.StatusBadRequest, "too_many_foods", err.Error())
		default:
			log.Error().Err(err).Msg("save food preferences failed")
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to save food preferences")
		}
		return
	}

	writeJSON(w, http.StatusOK, prefs)
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
