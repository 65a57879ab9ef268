// Package order provides the ordering domain: the Order aggregate, its status
// state machine and the store port the ordering service depends on.
package order

import (
	"time"

	"github.com/dvdonadelli/food-challenge/domain/failure"
	"github.com/dvdonadelli/food-challenge/domain/ident"
)

// Order is a customer order. Items keep insertion order.
type Order struct {
	ID         ident.ID    `json:"id"`
	CustomerID ident.ID    `json:"customer_id"`
	Items      []OrderItem `json:"items"`
	Status     Status      `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}

// OrderItem is a single line of an order.
type OrderItem struct {
	ProductID    int64  `json:"product_id"`
	Quantity     int    `json:"quantity"`
	Observations string `json:"observations,omitempty"`
	ToGo         bool   `json:"to_go"`
}

// NewOrder builds an order in RECEIVED with CreatedAt set to now. The ID is
// left unassigned for the store to fill in.
func NewOrder(customerID ident.ID, items []OrderItem) *Order {
	return &Order{
		CustomerID: customerID,
		Items:      append(make([]OrderItem, 0, len(items)), items...),
		Status:     StatusReceived,
		CreatedAt:  time.Now(),
	}
}

// ValidateItems checks the structure of order lines. An empty list is valid.
func ValidateItems(items []OrderItem) error {
	for i, item := range items {
		if item.ProductID <= 0 {
			return failure.Wrap(failure.ErrInvalidParameter, "item %d: product_id is required", i)
		}
		if item.Quantity <= 0 {
			return failure.Wrap(failure.ErrInvalidParameter, "item %d: quantity must be positive", i)
		}
	}
	return nil
}

// TransitionTo moves the order to target if the state machine allows it.
func (o *Order) TransitionTo(target Status) error {
	if o.Status.IsTerminal() {
		return failure.Wrap(failure.ErrInvalidParameter,
			"invalid status transition: %s -> %s: order is already %s", o.Status, target, o.Status)
	}
	if !o.Status.CanTransitionTo(target) {
		return failure.Wrap(failure.ErrInvalidParameter, "invalid status transition: %s -> %s", o.Status, target)
	}
	o.Status = target
	return nil
}
