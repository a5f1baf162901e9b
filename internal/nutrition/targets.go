package nutrition

import "github.com/fdg312/mealweek/internal/catalog"

const (
	DefaultCalorieTarget = 1500
	MinCalorieTarget     = 1000
	MaxCalorieTarget     = 4000
)

// ClampCalorieTarget bounds a requested daily target to the accepted range.
// Zero or negative values mean "not set" and yield the default.
func ClampCalorieTarget(kcal int) int {
	switch {
	case kcal <= 0:
		return DefaultCalorieTarget
	case kcal < MinCalorieTarget:
		return MinCalorieTarget
	case kcal > MaxCalorieTarget:
		return MaxCalorieTarget
	default:
		return kcal
	}
}

// CalorieProgress compares a day total against the daily target.
type CalorieProgress struct {
	ConsumedKcal  int  `json:"consumed_kcal"`
	TargetKcal    int  `json:"target_kcal"`
	RemainingKcal int  `json:"remaining_kcal"`
	Percent       int  `json:"percent"`
	OverTarget    bool `json:"over_target"`
}

func Progress(total catalog.NutritionProfile, targetKcal int) CalorieProgress {
	if targetKcal <= 0 {
		targetKcal = DefaultCalorieTarget
	}
	consumed := Kcal(total)
	return CalorieProgress{
		ConsumedKcal:  consumed,
		TargetKcal:    targetKcal,
		RemainingKcal: targetKcal - consumed,
		Percent:       percent(float64(consumed), float64(targetKcal)),
		OverTarget:    consumed > targetKcal,
	}
}
