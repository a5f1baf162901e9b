package catalog

import "fmt"

// MealSlotType is one of the six fixed meal occasions of a day.
// Declaration order is the chronological display order.
type MealSlotType int

const (
	Breakfast MealSlotType = iota
	SnackMorning
	Lunch
	SnackAfternoon
	Dinner
	Supper
)

var slotNames = [...]string{
	Breakfast:      "breakfast",
	SnackMorning:   "snack_morning",
	Lunch:          "lunch",
	SnackAfternoon: "snack_afternoon",
	Dinner:         "dinner",
	Supper:         "supper",
}

// Slots returns every slot type in display order.
func Slots() []MealSlotType {
	return []MealSlotType{Breakfast, SnackMorning, Lunch, SnackAfternoon, Dinner, Supper}
}

func (s MealSlotType) Valid() bool {
	return s >= Breakfast && s <= Supper
}

func (s MealSlotType) String() string {
	if !s.Valid() {
		return fmt.Sprintf("slot(%d)", int(s))
	}
	return slotNames[s]
}

// ParseSlot maps a wire name such as "snack_morning" to its slot type.
func ParseSlot(name string) (MealSlotType, bool) {
	for i, n := range slotNames {
		if n == name {
			return MealSlotType(i), true
		}
	}
	return 0, false
}

func (s MealSlotType) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid meal slot %d", int(s))
	}
	return []byte(slotNames[s]), nil
}

func (s *MealSlotType) UnmarshalText(b []byte) error {
	v, ok := ParseSlot(string(b))
	if !ok {
		return fmt.Errorf("unknown meal slot %q", string(b))
	}
	*s = v
	return nil
}
