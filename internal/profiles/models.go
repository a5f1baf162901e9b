package profiles

import (
	"time"

	"github.com/google/uuid"
)

// ProfileDTO is the API view of a profile.
type ProfileDTO struct {
	ID                   uuid.UUID `json:"id"`
	OwnerUserID          string    `json:"owner_user_id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email,omitempty"`
	DailyCalorieTarget   int       `json:"daily_calorie_target"`
	PreferencesCompleted bool      `json:"preferences_completed"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// UpdateProfileRequest is the PATCH /v1/profiles/me body. Absent fields stay unchanged.
type UpdateProfileRequest struct {
	Name               *string `json:"name"`
	Email              *string `json:"email"`
	DailyCalorieTarget *int    `json:"daily_calorie_target"`
}

// ErrorResponse is the error envelope written by every handler.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
