package ordering

import (
	"context"

	"github.com/dvdonadelli/food-challenge/domain/failure"
	"github.com/dvdonadelli/food-challenge/domain/ident"
	"github.com/dvdonadelli/food-challenge/domain/order"
)

// Service names registered in the ordering container.
const (
	ServiceCreate        = "create"
	ServiceGet           = "get"
	ServiceAdvanceStatus = "advance-status"
)

// CreateOrderRequest is the request for placing an order.
type CreateOrderRequest struct {
	CustomerID ident.ID          `json:"customer_id"`
	Items      []order.OrderItem `json:"items"`
}

// GetOrderRequest addresses a single order.
type GetOrderRequest struct {
	ID int64 `json:"id"`
}

// AdvanceStatusRequest asks for a status transition.
type AdvanceStatusRequest struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// OrderResponse carries an order or the error that prevented it.
type OrderResponse struct {
	Order *order.Order   `json:"order,omitempty"`
	Error *failure.Reply `json:"error,omitempty"`
}

// OrderingPort is the contract driving adapters use to reach ordering.
type OrderingPort interface {
	CreateOrder(ctx context.Context, customerID ident.ID, items []order.OrderItem) (*order.Order, error)
	GetOrder(ctx context.Context, id int64) (*order.Order, error)
	AdvanceStatus(ctx context.Context, id int64, targetRaw string) (*order.Order, error)
}

var _ OrderingPort = (*Service)(nil)
