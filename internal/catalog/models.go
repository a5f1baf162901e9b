package catalog

import (
	"fmt"
	"math"
)

// NutritionProfile holds nutrient amounts. Catalog entries express it per 100g.
type NutritionProfile struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sodium   float64 `json:"sodium"`
	Sugars   float64 `json:"sugars"`
}

// Add returns the field-wise sum of p and o.
func (p NutritionProfile) Add(o NutritionProfile) NutritionProfile {
	return NutritionProfile{
		Calories: p.Calories + o.Calories,
		Protein:  p.Protein + o.Protein,
		Carbs:    p.Carbs + o.Carbs,
		Fat:      p.Fat + o.Fat,
		Fiber:    p.Fiber + o.Fiber,
		Sodium:   p.Sodium + o.Sodium,
		Sugars:   p.Sugars + o.Sugars,
	}
}

// Scale multiplies every field by k.
func (p NutritionProfile) Scale(k float64) NutritionProfile {
	return NutritionProfile{
		Calories: p.Calories * k,
		Protein:  p.Protein * k,
		Carbs:    p.Carbs * k,
		Fat:      p.Fat * k,
		Fiber:    p.Fiber * k,
		Sodium:   p.Sodium * k,
		Sugars:   p.Sugars * k,
	}
}

func (p NutritionProfile) validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"calories", p.Calories},
		{"protein", p.Protein},
		{"carbs", p.Carbs},
		{"fat", p.Fat},
		{"fiber", p.Fiber},
		{"sodium", p.Sodium},
		{"sugars", p.Sugars},
	}
	for _, f := range fields {
		if !isFinite(f.value) || f.value < 0 {
			return fmt.Errorf("%s must be a finite value >= 0, got %v", f.name, f.value)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

type FoodItem struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Nutrition           NutritionProfile `json:"nutrition"`
	DefaultPortionGrams float64          `json:"default_portion_grams"`
	Category            string           `json:"category"`
}

// Ingredient is one entry of a meal composition.
type Ingredient struct {
	FoodID        string  `json:"food_id"`
	QuantityGrams float64 `json:"quantity_grams"`
}

type MealOption struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Items []string `json:"items"`
}

type DaySlot struct {
	Time            string `json:"time"`
	DefaultOptionID string `json:"default_option_id"`
}

type WorkSchedule struct {
	Start      string `json:"start,omitempty"`
	End        string `json:"end,omitempty"`
	BreakStart string `json:"break_start,omitempty"`
	BreakEnd   string `json:"break_end,omitempty"`
}

type GymSchedule struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type DayPlan struct {
	ID    string
	Label string
	Work  *WorkSchedule
	Gym   *GymSchedule
	Meals map[MealSlotType]DaySlot
}
