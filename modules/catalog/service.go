// Package catalog exposes product management as a mono module. The Service
// type holds the catalog rules and is usable without the framework.
package catalog

import (
	"context"
	"fmt"

	"github.com/dvdonadelli/food-challenge/domain/failure"
	"github.com/dvdonadelli/food-challenge/domain/ident"
	"github.com/dvdonadelli/food-challenge/domain/product"
	"github.com/go-monolith/mono/pkg/types"
)

// AckAccepted is the status reported for an accepted deletion.
const AckAccepted = "accepted"

// Acknowledgement confirms a command that returns no entity.
type Acknowledgement struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// Service enforces name uniqueness and existence-before-mutate on top of a
// product store. It does not lock; concurrent creates with the same name are
// resolved by the store's unique index.
type Service struct {
	repo   product.Repository
	logger types.Logger
}

// NewService creates a new catalog service.
func NewService(repo product.Repository, logger types.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateProduct stores candidate unless a product with the same name exists.
func (s *Service) CreateProduct(ctx context.Context, candidate product.Product) (*product.Product, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	candidate.ID = ident.ID{}

	existing, err := s.repo.FindByName(ctx, candidate.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, failure.Wrap(failure.ErrProductAlreadyExists, "product %q already exists", candidate.Name)
	}

	saved, err := s.repo.Save(ctx, &candidate)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product created", "id", saved.ID.String(), "name", saved.Name, "category", string(saved.Category))
	return saved, nil
}

// UpdateProduct replaces the mutable fields of product id with changes.
func (s *Service) UpdateProduct(ctx context.Context, id int64, changes product.Product) (*product.Product, error) {
	if err := changes.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, failure.Wrap(failure.ErrProductNotFound, "product %d", id)
	}

	existing.ApplyChanges(changes)
	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product updated", "id", id)
	return saved, nil
}

// DeleteProduct permanently removes product id. Orders that reference it are
// not checked.
func (s *Service) DeleteProduct(ctx context.Context, id int64) (Acknowledgement, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Acknowledgement{}, err
	}
	if existing == nil {
		return Acknowledgement{}, failure.Wrap(failure.ErrProductNotFound, "product %d", id)
	}

	if err := s.repo.Delete(ctx, existing); err != nil {
		return Acknowledgement{}, err
	}

	s.logger.Info("Product deleted", "id", id)
	return Acknowledgement{ID: id, Status: AckAccepted}, nil
}

// GetProduct returns product id.
func (s *Service) GetProduct(ctx context.Context, id int64) (*product.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, failure.Wrap(failure.ErrProductNotFound, "product %d", id)
	}
	return p, nil
}

// FindProductByCategory lists the products of category raw in storage order.
// An empty listing is reported as ErrNoObjectFound.
func (s *Service) FindProductByCategory(ctx context.Context, raw string) ([]product.Product, error) {
	category, err := product.ParseCategory(raw)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.FindByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list category %s: %w", category, err)
	}
	if len(products) == 0 {
		return nil, failure.Wrap(failure.ErrNoObjectFound, "no products in category %s", category)
	}
	return products, nil
}
