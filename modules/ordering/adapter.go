package ordering

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dvdonadelli/food-challenge/domain/ident"
	"github.com/dvdonadelli/food-challenge/domain/order"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// orderingAdapter calls the ordering services over the module's container.
type orderingAdapter struct {
	container mono.ServiceContainer
}

// NewOrderingAdapter creates an OrderingPort backed by request-reply calls.
func NewOrderingAdapter(container mono.ServiceContainer) OrderingPort {
	if container == nil {
		panic("ordering adapter requires non-nil ServiceContainer")
	}
	return &orderingAdapter{container: container}
}

func (a *orderingAdapter) CreateOrder(ctx context.Context, customerID ident.ID, items []order.OrderItem) (*order.Order, error) {
	req := CreateOrderRequest{CustomerID: customerID, Items: items}
	var resp OrderResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceCreate,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceCreate, err)
	}
	if err := resp.Error.Err(); err != nil {
		return nil, err
	}
	return resp.Order, nil
}

func (a *orderingAdapter) GetOrder(ctx context.Context, id int64) (*order.Order, error) {
	req := GetOrderRequest{ID: id}
	var resp OrderResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceGet,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceGet, err)
	}
	if err := resp.Error.Err(); err != nil {
		return nil, err
	}
	return resp.Order, nil
}

func (a *orderingAdapter) AdvanceStatus(ctx context.Context, id int64, targetRaw string) (*order.Order, error) {
	req := AdvanceStatusRequest{ID: id, Status: targetRaw}
	var resp OrderResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceAdvanceStatus,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("%s service call failed: %w", ServiceAdvanceStatus, err)
	}
	if err := resp.Error.Err(); err != nil {
		return nil, err
	}
	return resp.Order, nil
}
