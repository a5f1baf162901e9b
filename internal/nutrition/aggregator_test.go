package nutrition

import (
	"math"
	"testing"

	"github.com/fdg312/mealweek/internal/catalog"
)

const tolerance = 1e-9

type fakeFoods map[string]catalog.FoodItem

func (f fakeFoods) Lookup(id string) (catalog.FoodItem, bool) {
	item, ok := f[id]
	return item, ok
}

type fakeCompositions map[string][]catalog.Ingredient

func (f fakeCompositions) CompositionOf(id string) ([]catalog.Ingredient, bool) {
	ing, ok := f[id]
	return ing, ok
}

func testFoods() fakeFoods {
	return fakeFoods{
		"banana": {ID: "banana", Nutrition: catalog.NutritionProfile{Calories: 87, Protein: 1.1, Carbs: 23, Fat: 0.3, Fiber: 2.6, Sodium: 1, Sugars: 12}},
		"ovo":    {ID: "ovo", Nutrition: catalog.NutritionProfile{Calories: 155, Protein: 13, Carbs: 1.1, Fat: 11, Sodium: 142, Sugars: 1.1}},
		"aveia":  {ID: "aveia", Nutrition: catalog.NutritionProfile{Calories: 389, Protein: 16.9, Carbs: 66.3, Fat: 6.9, Fiber: 10.6, Sodium: 2, Sugars: 0.99}},
	}
}

func approxEqual(a, b catalog.NutritionProfile) bool {
	pairs := [][2]float64{
		{a.Calories, b.Calories},
		{a.Protein, b.Protein},
		{a.Carbs, b.Carbs},
		{a.Fat, b.Fat},
		{a.Fiber, b.Fiber},
		{a.Sodium, b.Sodium},
		{a.Sugars, b.Sugars},
	}
	for _, p := range pairs {
		if math.Abs(p[0]-p[1]) > tolerance*math.Max(1, math.Abs(p[1])) {
			return false
		}
	}
	return true
}

func TestAggregateEmpty(t *testing.T) {
	a := NewAggregator(testFoods(), fakeCompositions{})
	if got := a.Aggregate(nil); got != (catalog.NutritionProfile{}) {
		t.Errorf("expected zero profile, got %+v", got)
	}
	if got := a.Aggregate([]catalog.Ingredient{}); got != (catalog.NutritionProfile{}) {
		t.Errorf("expected zero profile, got %+v", got)
	}
}

func TestAggregateScalesPer100g(t *testing.T) {
	a := NewAggregator(testFoods(), fakeCompositions{})
	got := a.Aggregate([]catalog.Ingredient{{FoodID: "banana", QuantityGrams: 75}})
	if math.Abs(got.Calories-65.25) > tolerance {
		t.Errorf("expected 65.25 kcal, got %v", got.Calories)
	}
	if math.Abs(got.Sugars-9) > tolerance {
		t.Errorf("expected 9g sugars, got %v", got.Sugars)
	}
}

func TestAggregateSkipsUnknownFoods(t *testing.T) {
	a := NewAggregator(testFoods(), fakeCompositions{})
	got := a.Aggregate([]catalog.Ingredient{
		{FoodID: "ovo", QuantityGrams: 120},
		{FoodID: "nonexistent_food", QuantityGrams: 50},
	})
	if math.Abs(got.Calories-186) > tolerance {
		t.Errorf("expected 186 kcal, got %v", got.Calories)
	}
}

func TestAggregateIsLinear(t *testing.T) {
	a := NewAggregator(testFoods(), fakeCompositions{})
	base := []catalog.Ingredient{
		{FoodID: "banana", QuantityGrams: 75},
		{FoodID: "ovo", QuantityGrams: 120},
		{FoodID: "aveia", QuantityGrams: 15},
	}

	for _, k := range []float64{0.5, 2, 3.7} {
		scaled := make([]catalog.Ingredient, len(base))
		for i, ing := range base {
			scaled[i] = catalog.Ingredient{FoodID: ing.FoodID, QuantityGrams: ing.QuantityGrams * k}
		}
		want := a.Aggregate(base).Scale(k)
		if got := a.Aggregate(scaled); !approxEqual(got, want) {
			t.Errorf("k=%v: expected %+v, got %+v", k, want, got)
		}
	}
}

func TestAggregateIsOrderIndependent(t *testing.T) {
	a := NewAggregator(testFoods(), fakeCompositions{})
	forward := a.Aggregate([]catalog.Ingredient{
		{FoodID: "banana", QuantityGrams: 75},
		{FoodID: "ovo", QuantityGrams: 120},
		{FoodID: "aveia", QuantityGrams: 15},
	})
	reversed := a.Aggregate([]catalog.Ingredient{
		{FoodID: "aveia", QuantityGrams: 15},
		{FoodID: "ovo", QuantityGrams: 120},
		{FoodID: "banana", QuantityGrams: 75},
	})
	if !approxEqual(forward, reversed) {
		t.Errorf("order changed the result: %+v vs %+v", forward, reversed)
	}
}

func TestForOptionFallback(t *testing.T) {
	a := NewAggregator(testFoods(), fakeCompositions{"sm-banana": {{FoodID: "banana", QuantityGrams: 75}}})

	got := a.ForOption("sm-ameixa")
	want := catalog.NutritionProfile{Calories: 300, Protein: 15, Carbs: 30, Fat: 8, Fiber: 3, Sodium: 200, Sugars: 5}
	if got != want {
		t.Errorf("expected fallback %+v, got %+v", want, got)
	}
	if a.HasComposition("sm-ameixa") {
		t.Error("expected sm-ameixa to have no composition")
	}

	if got := a.ForOption("sm-banana"); math.Abs(got.Calories-65.25) > tolerance {
		t.Errorf("expected 65.25 kcal, got %v", got.Calories)
	}
}

func TestForOptionIsTotalOverDefaultRegistry(t *testing.T) {
	c := catalog.MustDefault()
	a := FromCatalog(c)

	for _, slot := range catalog.Slots() {
		for _, opt := range c.OptionsFor(slot) {
			p := a.ForOption(opt.ID)
			for _, v := range []float64{p.Calories, p.Protein, p.Carbs, p.Fat, p.Fiber, p.Sodium, p.Sugars} {
				if v < 0 || math.IsNaN(v) {
					t.Errorf("option %s produced invalid profile %+v", opt.ID, p)
				}
			}
			if p.Calories == 0 {
				t.Errorf("option %s has zero calories", opt.ID)
			}
		}
	}
}

func TestForOptionAgainstDefaultCatalog(t *testing.T) {
	a := FromCatalog(catalog.MustDefault())

	// 75g macarrão (93) + 60g patinho (94.8) + 30g queijo minas (79.2)
	got := a.ForOption("ln-macarrao-fit")
	if math.Abs(got.Calories-267) > 1e-6 {
		t.Errorf("expected 267 kcal, got %v", got.Calories)
	}
}

func TestDayTotalAllFallback(t *testing.T) {
	a := NewAggregator(testFoods(), fakeCompositions{})

	selections := make(map[catalog.MealSlotType]string)
	for _, slot := range catalog.Slots() {
		selections[slot] = "missing-" + slot.String()
	}

	got := a.DayTotal(selections)
	if got.Calories != 1800 {
		t.Errorf("expected 1800 kcal, got %v", got.Calories)
	}
	if got != FallbackProfile.Scale(6) {
		t.Errorf("expected 6x fallback, got %+v", got)
	}
}

func TestDayTotalMatchesSumOfOptions(t *testing.T) {
	c := catalog.MustDefault()
	a := FromCatalog(c)
	day, _ := c.Day("seg")

	selections := make(map[catalog.MealSlotType]string)
	var want catalog.NutritionProfile
	for _, slot := range catalog.Slots() {
		id := day.Meals[slot].DefaultOptionID
		selections[slot] = id
		want = want.Add(a.ForOption(id))
	}

	if got := a.DayTotal(selections); !approxEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}
