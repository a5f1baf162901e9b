package nutrition

import (
	"testing"

	"github.com/fdg312/mealweek/internal/catalog"
)

func TestMacrosEvenSplit(t *testing.T) {
	got := Macros(catalog.NutritionProfile{Protein: 50, Carbs: 50, Fat: 0})
	if got.ProteinPercent != 50 || got.CarbsPercent != 50 || got.FatPercent != 0 {
		t.Errorf("expected 50/50/0, got %+v", got)
	}
	if got.ProteinGrams != 50 || got.CarbsGrams != 50 || got.FatGrams != 0 {
		t.Errorf("unexpected grams: %+v", got)
	}
}

func TestMacrosZeroDenominator(t *testing.T) {
	got := Macros(catalog.NutritionProfile{Calories: 2})
	if got != (MacroSplit{}) {
		t.Errorf("expected zero split, got %+v", got)
	}
}

func TestMacrosRounding(t *testing.T) {
	// protein 80 kcal, carbs 80 kcal, fat 90 kcal -> 32 / 32 / 36
	got := Macros(catalog.NutritionProfile{Protein: 20, Carbs: 20, Fat: 10})
	if got.ProteinPercent != 32 || got.CarbsPercent != 32 || got.FatPercent != 36 {
		t.Errorf("expected 32/32/36, got %+v", got)
	}
}

func TestKcal(t *testing.T) {
	if got := Kcal(catalog.NutritionProfile{Calories: 65.25}); got != 65 {
		t.Errorf("expected 65, got %d", got)
	}
	if got := Kcal(catalog.NutritionProfile{Calories: 185.5}); got != 186 {
		t.Errorf("expected 186, got %d", got)
	}
}

func TestClampCalorieTarget(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultCalorieTarget},
		{-5, DefaultCalorieTarget},
		{500, MinCalorieTarget},
		{1800, 1800},
		{9000, MaxCalorieTarget},
	}
	for _, tt := range tests {
		if got := ClampCalorieTarget(tt.in); got != tt.want {
			t.Errorf("ClampCalorieTarget(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestProgress(t *testing.T) {
	p := Progress(catalog.NutritionProfile{Calories: 1800}, 1500)
	if !p.OverTarget || p.RemainingKcal != -300 || p.Percent != 120 {
		t.Errorf("unexpected progress: %+v", p)
	}

	p = Progress(catalog.NutritionProfile{Calories: 750}, 0)
	if p.TargetKcal != DefaultCalorieTarget || p.OverTarget || p.Percent != 50 {
		t.Errorf("unexpected progress with default target: %+v", p)
	}
}
