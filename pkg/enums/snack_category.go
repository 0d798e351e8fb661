package enums

import "fmt"

// SnackCategory buckets snack items into the two serving windows.
type SnackCategory string

const (
	SnackCategoryBreakfast   SnackCategory = "breakfast"
	SnackCategoryAllDaySnack SnackCategory = "all_day_snacks"
)

var validSnackCategories = []SnackCategory{
	SnackCategoryBreakfast,
	SnackCategoryAllDaySnack,
}

// String implements fmt.Stringer.
func (s SnackCategory) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SnackCategory.
func (s SnackCategory) IsValid() bool {
	for _, candidate := range validSnackCategories {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSnackCategory converts raw input into a SnackCategory.
func ParseSnackCategory(value string) (SnackCategory, error) {
	for _, candidate := range validSnackCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid snack category %q", value)
}
