package product

import (
	"slices"

	"github.com/dvdonadelli/food-challenge/domain/failure"
)

// Category is the closed set of catalog sections.
type Category string

const (
	CategoryMain    Category = "MAIN"
	CategorySide    Category = "SIDE"
	CategoryDrink   Category = "DRINK"
	CategoryDessert Category = "DESSERT"
)

var categories = []Category{CategoryMain, CategorySide, CategoryDrink, CategoryDessert}

// Categories returns every category in declaration order.
func Categories() []Category {
	return slices.Clone(categories)
}

// ParseCategory matches raw exactly (case-sensitive) against the category
// names.
func ParseCategory(raw string) (Category, error) {
	for _, c := range categories {
		if string(c) == raw {
			return c, nil
		}
	}
	return "", failure.Wrap(failure.ErrInvalidParameter, "invalid category: %s", raw)
}

// IsValid reports whether c is a member of the enumeration.
func (c Category) IsValid() bool {
	return slices.Contains(categories, c)
}
