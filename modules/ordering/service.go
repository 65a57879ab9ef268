// Package ordering exposes the order lifecycle as a mono module.
package ordering

import (
	"context"
	"errors"

	"github.com/dvdonadelli/food-challenge/domain/failure"
	"github.com/dvdonadelli/food-challenge/domain/ident"
	"github.com/dvdonadelli/food-challenge/domain/order"
	"github.com/go-monolith/mono/pkg/types"
)

// Service owns order creation and status transitions.
type Service struct {
	repo   order.Repository
	logger types.Logger
}

// NewService creates a new ordering service.
func NewService(repo order.Repository, logger types.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateOrder stores a new order in RECEIVED. Customer and product
// references are not checked against other modules.
func (s *Service) CreateOrder(ctx context.Context, customerID ident.ID, items []order.OrderItem) (*order.Order, error) {
	if err := order.ValidateItems(items); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, order.NewOrder(customerID, items))
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order created", "id", saved.ID.String(), "items", len(saved.Items))
	return saved, nil
}

// GetOrder returns order id.
func (s *Service) GetOrder(ctx context.Context, id int64) (*order.Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, failure.Wrap(failure.ErrNoObjectFound, "order %d", id)
	}
	return o, nil
}

// AdvanceStatus moves order id to the status named by targetRaw. The write
// is a compare-and-set on the status read, so a concurrent transition makes
// this one fail as an invalid transition.
func (s *Service) AdvanceStatus(ctx context.Context, id int64, targetRaw string) (*order.Order, error) {
	o, _, err := s.advance(ctx, id, targetRaw)
	return o, err
}

// advance is AdvanceStatus that also reports the status it moved from.
func (s *Service) advance(ctx context.Context, id int64, targetRaw string) (*order.Order, order.Status, error) {
	target, err := order.ParseStatus(targetRaw)
	if err != nil {
		return nil, "", err
	}

	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, "", err
	}

	from := o.Status
	if err := o.TransitionTo(target); err != nil {
		return nil, "", err
	}

	if err := s.repo.UpdateStatus(ctx, id, from, target); err != nil {
		if errors.Is(err, order.ErrStatusConflict) {
			return nil, "", failure.Wrap(failure.ErrInvalidParameter,
				"invalid status transition: %s -> %s: %v", from, target, err)
		}
		return nil, "", err
	}

	s.logger.Info("Order status changed", "id", id, "from", string(from), "to", string(target))
	return o, from, nil
}
