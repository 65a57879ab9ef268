// Package product provides the catalog domain: the Product entity, its
// closed set of categories and the store port the catalog depends on.
package product

import (
	"github.com/dvdonadelli/food-challenge/domain/failure"
	"github.com/dvdonadelli/food-challenge/domain/ident"
)

// Product represents a sellable item in the catalog.
type Product struct {
	ID          ident.ID `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Price       int64    `json:"price"` // smallest currency unit
	Category    Category `json:"category"`
}

// Validate checks the structural invariants of a candidate product.
func (p *Product) Validate() error {
	if p.Name == "" {
		return failure.Wrap(failure.ErrInvalidParameter, "name is required")
	}
	if p.Price < 0 {
		return failure.Wrap(failure.ErrInvalidParameter, "price must be non-negative")
	}
	if !p.Category.IsValid() {
		return failure.Wrap(failure.ErrInvalidParameter, "invalid category: %s", p.Category)
	}
	return nil
}

// ApplyChanges replaces the mutable fields of p with those of changes. The
// identifier is left untouched.
func (p *Product) ApplyChanges(changes Product) {
	p.Name = changes.Name
	p.Description = changes.Description
	p.Image = changes.Image
	p.Price = changes.Price
	p.Category = changes.Category
}
