package api

import (
	"context"

	"github.com/dvdonadelli/food-challenge/domain/failure"
	"github.com/dvdonadelli/food-challenge/domain/ident"
	"github.com/dvdonadelli/food-challenge/domain/product"
	"github.com/dvdonadelli/food-challenge/modules/catalog"
	"github.com/dvdonadelli/food-challenge/modules/notification"
	"github.com/dvdonadelli/food-challenge/modules/ordering"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
)

// HealthFunc reports overall health and per-component details.
type HealthFunc func(ctx context.Context) (bool, map[string]any)

// Handlers adapts HTTP requests to the catalog, ordering and notification
// ports.
type Handlers struct {
	catalog       catalog.CatalogPort
	ordering      ordering.OrderingPort
	notifications notification.NotificationPort
	health        HealthFunc
	logger        types.Logger
}

// NewHandlers creates the HTTP handlers.
func NewHandlers(
	catalogPort catalog.CatalogPort,
	orderingPort ordering.OrderingPort,
	notificationPort notification.NotificationPort,
	logger types.Logger,
) *Handlers {
	return &Handlers{
		catalog:       catalogPort,
		ordering:      orderingPort,
		notifications: notificationPort,
		logger:        logger,
	}
}

// Register mounts every route on app.
func (h *Handlers) Register(app *fiber.App) {
	app.Get("/health", h.Health)

	v1 := app.Group("/api/v1")
	v1.Get("/categories", h.ListCategories)

	products := v1.Group("/products")
	products.Post("/", h.CreateProduct)
	products.Get("/", h.FindProductsByCategory)
	products.Get("/:id", h.GetProduct)
	products.Put("/:id", h.UpdateProduct)
	products.Delete("/:id", h.DeleteProduct)

	orders := v1.Group("/orders")
	orders.Post("/", h.CreateOrder)
	orders.Get("/:id", h.GetOrder)
	orders.Patch("/:id/status", h.UpdateOrderStatus)

	v1.Get("/notifications", h.ListNotifications)
}

// Health handles GET /health. It reports 503 when any checked component is
// unhealthy.
func (h *Handlers) Health(c *fiber.Ctx) error {
	if h.health == nil {
		return c.JSON(HealthResponse{Status: "healthy"})
	}

	healthy, details := h.health(c.UserContext())
	if !healthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{
			Status:  "unhealthy",
			Details: details,
		})
	}
	return c.JSON(HealthResponse{Status: "healthy", Details: details})
}

// ListCategories handles GET /api/v1/categories.
func (h *Handlers) ListCategories(c *fiber.Ctx) error {
	return c.JSON(CategoriesResponse{Categories: product.Categories()})
}

// CreateProduct handles POST /api/v1/products.
func (h *Handlers) CreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	p, err := h.catalog.CreateProduct(c.UserContext(), req.toDomain())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// UpdateProduct handles PUT /api/v1/products/:id.
func (h *Handlers) UpdateProduct(c *fiber.Ctx) error {
	id, err := ident.Parse(c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}

	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	p, err := h.catalog.UpdateProduct(c.UserContext(), id.Int64(), req.toDomain())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(p)
}

// DeleteProduct handles DELETE /api/v1/products/:id.
func (h *Handlers) DeleteProduct(c *fiber.Ctx) error {
	id, err := ident.Parse(c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}

	ack, err := h.catalog.DeleteProduct(c.UserContext(), id.Int64())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(ack)
}

// GetProduct handles GET /api/v1/products/:id.
func (h *Handlers) GetProduct(c *fiber.Ctx) error {
	id, err := ident.Parse(c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}

	p, err := h.catalog.GetProduct(c.UserContext(), id.Int64())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(p)
}

// FindProductsByCategory handles GET /api/v1/products?category=.
func (h *Handlers) FindProductsByCategory(c *fiber.Ctx) error {
	products, err := h.catalog.FindProductByCategory(c.UserContext(), c.Query("category"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(ListProductsResponse{Products: products, Total: len(products)})
}

// CreateOrder handles POST /api/v1/orders.
func (h *Handlers) CreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	o, err := h.ordering.CreateOrder(c.UserContext(), req.customerID(), req.items())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(o))
}

// GetOrder handles GET /api/v1/orders/:id.
func (h *Handlers) GetOrder(c *fiber.Ctx) error {
	id, err := ident.Parse(c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}

	o, err := h.ordering.GetOrder(c.UserContext(), id.Int64())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(toOrderResponse(o))
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status.
func (h *Handlers) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := ident.Parse(c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	o, err := h.ordering.AdvanceStatus(c.UserContext(), id.Int64(), req.Status)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(toOrderResponse(o))
}

// ListNotifications handles GET /api/v1/notifications?order_id=.
func (h *Handlers) ListNotifications(c *fiber.Ctx) error {
	var orderID int64
	if raw := c.Query("order_id"); raw != "" {
		id, err := ident.Parse(raw)
		if err != nil {
			return h.writeError(c, err)
		}
		orderID = id.Int64()
	}

	entries, err := h.notifications.ListEntries(c.UserContext(), orderID)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(NotificationsResponse{Entries: entries, Total: len(entries)})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid_request",
		Message: "Invalid request body",
	})
}

// statusFor maps an error kind to its HTTP status.
func statusFor(code failure.Code) int {
	switch code {
	case failure.CodeInvalidParameter:
		return fiber.StatusBadRequest
	case failure.CodeProductAlreadyExists:
		return fiber.StatusConflict
	case failure.CodeProductNotFound, failure.CodeNoObjectFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handlers) writeError(c *fiber.Ctx, err error) error {
	code := failure.CodeOf(err)
	message := err.Error()
	if code == failure.CodeInternal {
		h.logger.Error("Request failed", "method", c.Method(), "path", c.Path(), "error", err)
		message = "Internal Server Error"
	}
	return c.Status(statusFor(code)).JSON(ErrorResponse{
		Error:   string(code),
		Message: message,
	})
}
