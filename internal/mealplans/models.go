package mealplans

import (
	"github.com/fdg312/mealweek/internal/catalog"
	"github.com/fdg312/mealweek/internal/nutrition"
	"github.com/google/uuid"
)

// SlotDefaultDTO is one scheduled meal of a day in the week overview.
type SlotDefaultDTO struct {
	Slot            catalog.MealSlotType `json:"slot"`
	Title           string               `json:"title"`
	Time            string               `json:"time"`
	DefaultOptionID string               `json:"default_option_id"`
}

// DaySummaryDTO describes a day of the week without nutrition.
type DaySummaryDTO struct {
	ID    string                `json:"id"`
	Label string                `json:"label"`
	Work  *catalog.WorkSchedule `json:"work,omitempty"`
	Gym   *catalog.GymSchedule  `json:"gym,omitempty"`
	Meals []SlotDefaultDTO      `json:"meals"`
}

// WeekResponse is the response for GET /v1/plan/week.
type WeekResponse struct {
	Days []DaySummaryDTO `json:"days"`
}

// OptionDTO is a meal option with its computed nutrition.
type OptionDTO struct {
	ID        string                   `json:"id"`
	Label     string                   `json:"label"`
	Items     []string                 `json:"items"`
	Nutrition catalog.NutritionProfile `json:"nutrition"`
	Kcal      int                      `json:"kcal"`
	Estimated bool                     `json:"estimated"`
}

type SlotDTO struct {
	Slot    catalog.MealSlotType `json:"slot"`
	Title   string               `json:"title"`
	Options []OptionDTO          `json:"options"`
}

// SlotsResponse is the response for GET /v1/plan/slots.
type SlotsResponse struct {
	Slots []SlotDTO `json:"slots"`
}

// MealViewDTO is one slot of a rendered day. Estimated marks options whose
// nutrition is the fallback profile.
type MealViewDTO struct {
	Slot       catalog.MealSlotType     `json:"slot"`
	Title      string                   `json:"title"`
	Time       string                   `json:"time"`
	OptionID   string                   `json:"option_id"`
	Label      string                   `json:"label"`
	Items      []string                 `json:"items"`
	Nutrition  catalog.NutritionProfile `json:"nutrition"`
	Kcal       int                      `json:"kcal"`
	Estimated  bool                     `json:"estimated"`
	Overridden bool                     `json:"overridden"`
}

// DayViewDTO is a day with the current selection and its nutrition.
type DayViewDTO struct {
	SessionID *uuid.UUID                `json:"session_id,omitempty"`
	DayID     string                    `json:"day_id"`
	Label     string                    `json:"label"`
	Work      *catalog.WorkSchedule     `json:"work,omitempty"`
	Gym       *catalog.GymSchedule      `json:"gym,omitempty"`
	Meals     []MealViewDTO             `json:"meals"`
	Total     catalog.NutritionProfile  `json:"total"`
	TotalKcal int                       `json:"total_kcal"`
	Macros    nutrition.MacroSplit      `json:"macros"`
	Progress  nutrition.CalorieProgress `json:"progress"`
}

// CreateSessionRequest is the body of POST /v1/plan/sessions.
type CreateSessionRequest struct {
	DayID string `json:"day_id"`
}

// SwitchDayRequest is the body of PUT /v1/plan/sessions/{id}/day.
type SwitchDayRequest struct {
	DayID string `json:"day_id"`
}

// SelectOptionRequest is the body of PUT /v1/plan/sessions/{id}/selections/{slot}.
type SelectOptionRequest struct {
	OptionID string `json:"option_id"`
}

// CycleRequest is the body of POST .../selections/{slot}/cycle. Zero step means 1.
type CycleRequest struct {
	Step int `json:"step"`
}

// ErrorResponse is the error envelope written by every handler.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
