package nutrition

import (
	"math"

	"github.com/fdg312/mealweek/internal/catalog"
)

// Energy density of each macronutrient, kcal per gram.
const (
	KcalPerGramProtein = 4
	KcalPerGramCarbs   = 4
	KcalPerGramFat     = 9
)

// MacroSplit is the share of energy coming from each macronutrient.
type MacroSplit struct {
	ProteinGrams   int `json:"protein_g"`
	CarbsGrams     int `json:"carbs_g"`
	FatGrams       int `json:"fat_g"`
	ProteinPercent int `json:"protein_pct"`
	CarbsPercent   int `json:"carbs_pct"`
	FatPercent     int `json:"fat_pct"`
}

// Macros computes the macro split of p. All percentages are 0 when p has no
// protein, carbs or fat.
func Macros(p catalog.NutritionProfile) MacroSplit {
	proteinKcal := p.Protein * KcalPerGramProtein
	carbsKcal := p.Carbs * KcalPerGramCarbs
	fatKcal := p.Fat * KcalPerGramFat
	total := proteinKcal + carbsKcal + fatKcal

	return MacroSplit{
		ProteinGrams:   round(p.Protein),
		CarbsGrams:     round(p.Carbs),
		FatGrams:       round(p.Fat),
		ProteinPercent: percent(proteinKcal, total),
		CarbsPercent:   percent(carbsKcal, total),
		FatPercent:     percent(fatKcal, total),
	}
}

func percent(part, total float64) int {
	if total == 0 {
		return 0
	}
	return round(part / total * 100)
}

func round(v float64) int {
	return int(math.Round(v))
}

// Kcal rounds calories for badge display.
func Kcal(p catalog.NutritionProfile) int {
	return round(p.Calories)
}
