package foodprefs

import "time"

// CategoriesResponse is the response for GET /v1/food-prefs/categories.
type CategoriesResponse struct {
	Categories []Category `json:"categories"`
}

// FoodPrefsDTO is the stored onboarding selection.
type FoodPrefsDTO struct {
	FoodIDs              []string   `json:"food_ids"`
	DailyCalorieTarget   int        `json:"daily_calorie_target"`
	PreferencesCompleted bool       `json:"preferences_completed"`
	UpdatedAt            *time.Time `json:"updated_at,omitempty"`
}

// SaveFoodPrefsRequest is the request body for PUT /v1/food-prefs.
type SaveFoodPrefsRequest struct {
	FoodIDs            []string `json:"food_ids"`
	DailyCalorieTarget int      `json:"daily_calorie_target"`
}

// ErrorResponse is the error envelope written by every handler.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
