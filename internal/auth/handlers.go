package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fdg312/mealweek/internal/auth/emailotp"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	service         *Service
	emailOTPService *emailotp.Service
}

func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

func (h *Handlers) WithEmailOTP(service *emailotp.Service) *Handlers {
	h.emailOTPService = service
	return h
}

// HandleDevAuth handles POST /v1/auth/dev
func (h *Handlers) HandleDevAuth(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.SignInDev(r.Context())
	if err != nil {
		if errors.Is(err, ErrDevAuthOff) {
			writeErrorResponse(w, http.StatusNotFound, "dev_auth_disabled", "Dev auth is disabled")
			return
		}
		log.Error().Err(err).Msg("dev sign-in failed")
		writeErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to sign in")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleEmailOTPRequest handles POST /v1/auth/email/request
func (h *Handlers) HandleEmailOTPRequest(w http.ResponseWriter, r *http.Request) {
	if h.emailOTPService == nil {
		writeErrorResponse(w, http.StatusNotFound, "email_auth_disabled", "Email auth is disabled")
		return
	}

	var req EmailOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	resp, err := h.emailOTPService.Request(r.Context(), req.Email)
	if err != nil {
		h.writeOTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleEmailOTPVerify handles POST /v1/auth/email/verify
func (h *Handlers) HandleEmailOTPVerify(w http.ResponseWriter, r *http.Request) {
	if h.emailOTPService == nil {
		writeErrorResponse(w, http.StatusNotFound, "email_auth_disabled", "Email auth is disabled")
		return
	}

	var req EmailOTPVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	resp, err := h.emailOTPService.Verify(r.Context(), req.Email, req.Code)
	if err != nil {
		h.writeOTPError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) writeOTPError(w http.ResponseWriter, err error) {
	if serviceErr, ok := emailotp.AsServiceError(err); ok {
		writeErrorResponse(w, serviceErr.Status, serviceErr.Code, serviceErr.Message)
		return
	}
	log.Error().Err(err).Msg("email otp failed")
	writeErrorResponse(w, http.StatusInternalServerError, "internal_error", "Internal server error")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
