package catalog

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"
)

// ErrInvalidCatalog wraps every load-time validation failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

// WeekLength is the number of days a week plan must contain.
const WeekLength = 7

// Data is the raw configuration a Catalog is built from.
type Data struct {
	Foods        []FoodItem
	Compositions map[string][]Ingredient
	Options      map[MealSlotType][]MealOption
	Titles       map[MealSlotType]string
	Week         []DayPlan
}

// Catalog is the read-only food, composition, option and week plan lookup.
// It is safe for concurrent use once built.
type Catalog struct {
	foods        map[string]FoodItem
	foodOrder    []string
	compositions map[string][]Ingredient
	options      map[MealSlotType][]MealOption
	optionIndex  map[MealSlotType]map[string]int
	titles       map[MealSlotType]string
	week         []DayPlan
	dayIndex     map[string]int
	warnings     []string
}

// New validates data and builds a Catalog. Structural problems (missing
// slots, bad defaults, negative nutrients) are returned as errors; options
// without a composition and compositions referencing unknown foods are
// recorded as warnings.
func New(data Data) (*Catalog, error) {
	c := &Catalog{
		foods:        make(map[string]FoodItem, len(data.Foods)),
		compositions: make(map[string][]Ingredient, len(data.Compositions)),
		options:      make(map[MealSlotType][]MealOption, len(data.Options)),
		optionIndex:  make(map[MealSlotType]map[string]int, len(data.Options)),
		titles:       make(map[MealSlotType]string, len(data.Titles)),
		dayIndex:     make(map[string]int, len(data.Week)),
	}

	for _, f := range data.Foods {
		if f.ID == "" {
			return nil, fmt.Errorf("%w: food with empty id", ErrInvalidCatalog)
		}
		if _, dup := c.foods[f.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate food %q", ErrInvalidCatalog, f.ID)
		}
		if err := f.Nutrition.validate(); err != nil {
			return nil, fmt.Errorf("%w: food %q: %v", ErrInvalidCatalog, f.ID, err)
		}
		if !isFinite(f.DefaultPortionGrams) || f.DefaultPortionGrams < 0 {
			return nil, fmt.Errorf("%w: food %q: negative default portion", ErrInvalidCatalog, f.ID)
		}
		c.foods[f.ID] = f
		c.foodOrder = append(c.foodOrder, f.ID)
	}

	for optionID, ingredients := range data.Compositions {
		for _, ing := range ingredients {
			if !isFinite(ing.QuantityGrams) || ing.QuantityGrams <= 0 {
				return nil, fmt.Errorf("%w: composition %q: quantity for %q must be finite and > 0", ErrInvalidCatalog, optionID, ing.FoodID)
			}
			if _, ok := c.foods[ing.FoodID]; !ok {
				c.warnf("composition %q references unknown food %q", optionID, ing.FoodID)
			}
		}
		c.compositions[optionID] = slices.Clone(ingredients)
	}

	for _, slot := range Slots() {
		title, ok := data.Titles[slot]
		if !ok || title == "" {
			return nil, fmt.Errorf("%w: no title for slot %s", ErrInvalidCatalog, slot)
		}
		c.titles[slot] = title

		opts := data.Options[slot]
		if len(opts) == 0 {
			return nil, fmt.Errorf("%w: no options for slot %s", ErrInvalidCatalog, slot)
		}
		index := make(map[string]int, len(opts))
		for i, opt := range opts {
			if opt.ID == "" {
				return nil, fmt.Errorf("%w: slot %s: option with empty id", ErrInvalidCatalog, slot)
			}
			if _, dup := index[opt.ID]; dup {
				return nil, fmt.Errorf("%w: slot %s: duplicate option %q", ErrInvalidCatalog, slot, opt.ID)
			}
			index[opt.ID] = i
			if _, ok := c.compositions[opt.ID]; !ok {
				c.warnf("option %q (%s) has no composition, fallback nutrition applies", opt.ID, slot)
			}
		}
		c.options[slot] = slices.Clone(opts)
		c.optionIndex[slot] = index
	}
	for slot := range data.Titles {
		if !slot.Valid() {
			return nil, fmt.Errorf("%w: title for unknown slot %s", ErrInvalidCatalog, slot)
		}
	}
	for slot := range data.Options {
		if !slot.Valid() {
			return nil, fmt.Errorf("%w: options for unknown slot %s", ErrInvalidCatalog, slot)
		}
	}

	if len(data.Week) != WeekLength {
		return nil, fmt.Errorf("%w: week plan must have %d days, got %d", ErrInvalidCatalog, WeekLength, len(data.Week))
	}
	for i, day := range data.Week {
		if err := c.validateDay(day); err != nil {
			return nil, err
		}
		if _, dup := c.dayIndex[day.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate day %q", ErrInvalidCatalog, day.ID)
		}
		c.dayIndex[day.ID] = i
		c.week = append(c.week, cloneDay(day))
	}

	return c, nil
}

func (c *Catalog) validateDay(day DayPlan) error {
	if day.ID == "" {
		return fmt.Errorf("%w: day with empty id", ErrInvalidCatalog)
	}
	if len(day.Meals) != len(slotNames) {
		for slot := range day.Meals {
			if !slot.Valid() {
				return fmt.Errorf("%w: day %q: unknown slot %s", ErrInvalidCatalog, day.ID, slot)
			}
		}
	}
	for _, slot := range Slots() {
		ds, ok := day.Meals[slot]
		if !ok {
			return fmt.Errorf("%w: day %q: missing slot %s", ErrInvalidCatalog, day.ID, slot)
		}
		if !validClock(ds.Time) {
			return fmt.Errorf("%w: day %q: slot %s: invalid time %q", ErrInvalidCatalog, day.ID, slot, ds.Time)
		}
		if _, ok := c.optionIndex[slot][ds.DefaultOptionID]; !ok {
			return fmt.Errorf("%w: day %q: slot %s: default option %q is not registered", ErrInvalidCatalog, day.ID, slot, ds.DefaultOptionID)
		}
	}
	if day.Gym != nil && (!validClock(day.Gym.Start) || !validClock(day.Gym.End)) {
		return fmt.Errorf("%w: day %q: invalid gym schedule", ErrInvalidCatalog, day.ID)
	}
	if w := day.Work; w != nil {
		for _, t := range []string{w.Start, w.End, w.BreakStart, w.BreakEnd} {
			if t != "" && !validClock(t) {
				return fmt.Errorf("%w: day %q: invalid work time %q", ErrInvalidCatalog, day.ID, t)
			}
		}
	}
	return nil
}

func validClock(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

func (c *Catalog) warnf(format string, args ...any) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

func cloneDay(d DayPlan) DayPlan {
	out := d
	out.Meals = maps.Clone(d.Meals)
	if d.Work != nil {
		w := *d.Work
		out.Work = &w
	}
	if d.Gym != nil {
		g := *d.Gym
		out.Gym = &g
	}
	return out
}

// Warnings returns the soft inconsistencies found while loading.
func (c *Catalog) Warnings() []string {
	return slices.Clone(c.warnings)
}

// Lookup returns the food with the given id.
func (c *Catalog) Lookup(foodID string) (FoodItem, bool) {
	f, ok := c.foods[foodID]
	return f, ok
}

// Foods returns every food in configuration order.
func (c *Catalog) Foods() []FoodItem {
	out := make([]FoodItem, 0, len(c.foodOrder))
	for _, id := range c.foodOrder {
		out = append(out, c.foods[id])
	}
	return out
}

// CompositionOf returns the ingredients of a meal option.
func (c *Catalog) CompositionOf(optionID string) ([]Ingredient, bool) {
	ing, ok := c.compositions[optionID]
	if !ok {
		return nil, false
	}
	return slices.Clone(ing), true
}

// OptionsFor returns the alternatives of a slot in display order.
func (c *Catalog) OptionsFor(slot MealSlotType) []MealOption {
	return slices.Clone(c.options[slot])
}

// Option returns the option registered under id for slot.
func (c *Catalog) Option(slot MealSlotType, id string) (MealOption, bool) {
	i, ok := c.optionIndex[slot][id]
	if !ok {
		return MealOption{}, false
	}
	return c.options[slot][i], true
}

// OptionIndex returns the display position of id within slot.
func (c *Catalog) OptionIndex(slot MealSlotType, id string) (int, bool) {
	i, ok := c.optionIndex[slot][id]
	return i, ok
}

// TitleOf returns the display title of slot. New guarantees every slot has one.
func (c *Catalog) TitleOf(slot MealSlotType) string {
	title, ok := c.titles[slot]
	if !ok {
		panic(fmt.Sprintf("catalog: no title for slot %s", slot))
	}
	return title
}

// Week returns the seven day plans in order.
func (c *Catalog) Week() []DayPlan {
	out := make([]DayPlan, len(c.week))
	for i, d := range c.week {
		out[i] = cloneDay(d)
	}
	return out
}

func (c *Catalog) Day(id string) (DayPlan, bool) {
	i, ok := c.dayIndex[id]
	if !ok {
		return DayPlan{}, false
	}
	return cloneDay(c.week[i]), true
}

// FirstDay returns the first day of the week plan.
func (c *Catalog) FirstDay() DayPlan {
	return cloneDay(c.week[0])
}
