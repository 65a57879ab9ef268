// Package events declares the domain events published between modules.
package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// OrderCreatedEvent is emitted when a new order enters the kitchen queue.
type OrderCreatedEvent struct {
	EventID    string    `json:"event_id"`
	OrderID    int64     `json:"order_id"`
	CustomerID *int64    `json:"customer_id,omitempty"`
	ItemCount  int       `json:"item_count"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// OrderCreatedV1 is the typed event definition for order creation.
// Subject: events.ordering.v1.order-created
var OrderCreatedV1 = helper.EventDefinition[OrderCreatedEvent](
	"ordering", "OrderCreated", "v1",
)

// OrderStatusChangedEvent is emitted after a successful status transition.
type OrderStatusChangedEvent struct {
	EventID   string    `json:"event_id"`
	OrderID   int64     `json:"order_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}

// OrderStatusChangedV1 is the typed event definition for status transitions.
// Subject: events.ordering.v1.order-status-changed
var OrderStatusChangedV1 = helper.EventDefinition[OrderStatusChangedEvent](
	"ordering", "OrderStatusChanged", "v1",
)
