package domain

import (
	"fmt"
	"strings"
)

// Category classifies an activity. The set is closed: ParseCategory rejects
// anything outside it.
type Category string

const (
	CategoryAccommodation  Category = "accommodation"
	CategoryTransportation Category = "transportation"
	CategoryFood           Category = "food"
	CategoryLeisure        Category = "leisure"
	CategoryOther          Category = "other"
)

// Categories lists every valid Category in display order.
var Categories = []Category{
	CategoryAccommodation,
	CategoryTransportation,
	CategoryFood,
	CategoryLeisure,
	CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory converts user input into a Category.
// Matching ignores case and surrounding whitespace.
// Returns ErrValidation for anything outside the closed set.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown category %q", ErrValidation, s)
	}
	return c, nil
}
