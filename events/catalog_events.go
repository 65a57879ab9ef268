package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// ProductCreatedEvent is emitted when a product is added to the catalog.
type ProductCreatedEvent struct {
	EventID   string    `json:"event_id"`
	ProductID int64     `json:"product_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     int64     `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductCreatedV1 is the typed event definition for product creation.
// Subject: events.catalog.v1.product-created
var ProductCreatedV1 = helper.EventDefinition[ProductCreatedEvent](
	"catalog", "ProductCreated", "v1",
)

// ProductUpdatedEvent is emitted when a product's fields are replaced.
type ProductUpdatedEvent struct {
	EventID   string    `json:"event_id"`
	ProductID int64     `json:"product_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     int64     `json:"price"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductUpdatedV1 is the typed event definition for product updates.
// Subject: events.catalog.v1.product-updated
var ProductUpdatedV1 = helper.EventDefinition[ProductUpdatedEvent](
	"catalog", "ProductUpdated", "v1",
)

// ProductDeletedEvent is emitted when a product is removed.
type ProductDeletedEvent struct {
	EventID   string    `json:"event_id"`
	ProductID int64     `json:"product_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// ProductDeletedV1 is the typed event definition for product deletion.
// Subject: events.catalog.v1.product-deleted
var ProductDeletedV1 = helper.EventDefinition[ProductDeletedEvent](
	"catalog", "ProductDeleted", "v1",
)
