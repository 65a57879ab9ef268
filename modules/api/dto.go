package api

import (
	"time"

	"github.com/dvdonadelli/food-challenge/domain/ident"
	"github.com/dvdonadelli/food-challenge/domain/order"
	"github.com/dvdonadelli/food-challenge/domain/product"
	"github.com/dvdonadelli/food-challenge/modules/notification"
)

// ProductRequest is the HTTP body for creating or updating a product.
type ProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
}

func (r ProductRequest) toDomain() product.Product {
	return product.Product{
		Name:        r.Name,
		Description: r.Description,
		Image:       r.Image,
		Price:       r.Price,
		Category:    product.Category(r.Category),
	}
}

// OrderItemRequest is one line of an order request.
type OrderItemRequest struct {
	ProductID    int64  `json:"product_id"`
	Quantity     int    `json:"quantity"`
	Observations string `json:"observations"`
	ToGo         bool   `json:"to_go"`
}

// CreateOrderRequest is the HTTP body for placing an order.
type CreateOrderRequest struct {
	CustomerID *int64             `json:"customer_id"`
	Items      []OrderItemRequest `json:"items"`
}

func (r CreateOrderRequest) items() []order.OrderItem {
	items := make([]order.OrderItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, order.OrderItem{
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			Observations: it.Observations,
			ToGo:         it.ToGo,
		})
	}
	return items
}

func (r CreateOrderRequest) customerID() ident.ID {
	return ident.FromPtr(r.CustomerID)
}

// UpdateStatusRequest is the HTTP body for a status transition.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// OrderResponse is the HTTP representation of an order.
type OrderResponse struct {
	ID         ident.ID          `json:"id"`
	CustomerID ident.ID          `json:"customer_id"`
	Items      []order.OrderItem `json:"items"`
	Status     string            `json:"status"`
	CreatedAt  string            `json:"created_at"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Items:      o.Items,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ListProductsResponse is the HTTP response for a category listing.
type ListProductsResponse struct {
	Products []product.Product `json:"products"`
	Total    int               `json:"total"`
}

// CategoriesResponse lists the catalog sections.
type CategoriesResponse struct {
	Categories []product.Category `json:"categories"`
}

// NotificationsResponse is the kitchen log listing.
type NotificationsResponse struct {
	Entries []notification.Entry `json:"entries"`
	Total   int                  `json:"total"`
}

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
