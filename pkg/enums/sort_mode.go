package enums

import "fmt"

// SortMode selects the ordering applied to catalog query results.
type SortMode string

const (
	SortPriceLowHigh SortMode = "price-low-high"
	SortPriceHighLow SortMode = "price-high-low"
	SortPopular      SortMode = "popular"
	// SortNewest has no creation timestamp behind it; results keep catalog order.
	SortNewest SortMode = "newest"
)

var validSortModes = []SortMode{
	SortPriceLowHigh,
	SortPriceHighLow,
	SortPopular,
	SortNewest,
}

// String implements fmt.Stringer.
func (s SortMode) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortMode.
func (s SortMode) IsValid() bool {
	for _, candidate := range validSortModes {
		if candidate == s {
			return true
		}
	}
	return false
}

// SortModes lists every supported sort mode in display order.
func SortModes() []SortMode {
	return append([]SortMode(nil), validSortModes...)
}

// ParseSortMode converts raw input into a SortMode.
func ParseSortMode(value string) (SortMode, error) {
	for _, candidate := range validSortModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort mode %q", value)
}
