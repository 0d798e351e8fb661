package enums

import "fmt"

// MealType is the dietary tag on weekly menu items.
type MealType string

const (
	MealTypeVeg    MealType = "veg"
	MealTypeNonVeg MealType = "non_veg"
	MealTypeVegan  MealType = "vegan"
	MealTypeJain   MealType = "jain"
)

var validMealTypes = []MealType{
	MealTypeVeg,
	MealTypeNonVeg,
	MealTypeVegan,
	MealTypeJain,
}

// String implements fmt.Stringer.
func (m MealType) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MealType.
func (m MealType) IsValid() bool {
	for _, candidate := range validMealTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMealType converts raw input into a MealType.
func ParseMealType(value string) (MealType, error) {
	for _, candidate := range validMealTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid meal type %q", value)
}
