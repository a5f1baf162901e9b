package nutrition

import "github.com/fdg312/mealweek/internal/catalog"

// FallbackProfile is reported for meal options that have no composition yet.
var FallbackProfile = catalog.NutritionProfile{
	Calories: 300,
	Protein:  15,
	Carbs:    30,
	Fat:      8,
	Fiber:    3,
	Sodium:   200,
	Sugars:   5,
}

// FoodLookup resolves foods by id.
type FoodLookup interface {
	Lookup(foodID string) (catalog.FoodItem, bool)
}

// CompositionLookup resolves the ingredients of a meal option.
type CompositionLookup interface {
	CompositionOf(optionID string) ([]catalog.Ingredient, bool)
}

// Aggregator computes nutrition totals from the catalog. It holds no
// mutable state and is safe for concurrent use.
type Aggregator struct {
	foods        FoodLookup
	compositions CompositionLookup
}

func NewAggregator(foods FoodLookup, compositions CompositionLookup) *Aggregator {
	return &Aggregator{foods: foods, compositions: compositions}
}

// FromCatalog builds an Aggregator backed by c.
func FromCatalog(c *catalog.Catalog) *Aggregator {
	return NewAggregator(c, c)
}

// Aggregate sums the per-100g nutrition of each ingredient scaled by its
// quantity. Ingredients whose food is not in the catalog contribute zero.
func (a *Aggregator) Aggregate(composition []catalog.Ingredient) catalog.NutritionProfile {
	var total catalog.NutritionProfile
	for _, ing := range composition {
		item, ok := a.foods.Lookup(ing.FoodID)
		if !ok {
			continue
		}
		total = total.Add(item.Nutrition.Scale(ing.QuantityGrams / 100))
	}
	return total
}

// ForOption returns the nutrition of a meal option, or FallbackProfile when
// the option has no composition.
func (a *Aggregator) ForOption(optionID string) catalog.NutritionProfile {
	composition, ok := a.compositions.CompositionOf(optionID)
	if !ok {
		return FallbackProfile
	}
	return a.Aggregate(composition)
}

// HasComposition reports whether ForOption uses real data for optionID.
func (a *Aggregator) HasComposition(optionID string) bool {
	_, ok := a.compositions.CompositionOf(optionID)
	return ok
}

// DayTotal sums ForOption over the selected option of every slot.
func (a *Aggregator) DayTotal(selections map[catalog.MealSlotType]string) catalog.NutritionProfile {
	var total catalog.NutritionProfile
	for _, slot := range catalog.Slots() {
		optionID, ok := selections[slot]
		if !ok {
			continue
		}
		total = total.Add(a.ForOption(optionID))
	}
	return total
}
