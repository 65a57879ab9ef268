package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dvdonadelli/food-challenge/domain/failure"
	"github.com/dvdonadelli/food-challenge/domain/product"
	"github.com/dvdonadelli/food-challenge/events"
	"github.com/dvdonadelli/food-challenge/modules/cache"
	"github.com/dvdonadelli/food-challenge/modules/database"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/google/uuid"
)

// Module serves the catalog over request-reply and publishes product events.
type Module struct {
	logger   types.Logger
	database *database.PluginModule
	cache    *cache.PluginModule
	eventBus mono.EventBus
	service  *Service
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
	_ mono.UsePluginModule       = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new catalog module.
func NewModule(logger types.Logger) *Module {
	return &Module{logger: logger}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "catalog"
}

// SetPlugin receives the database plugin and, when configured, the cache.
func (m *Module) SetPlugin(alias string, plugin mono.PluginModule) {
	switch alias {
	case "database":
		if p, ok := plugin.(*database.PluginModule); ok {
			m.database = p
			m.logger.Info("Received database plugin", "alias", alias)
		}
	case "cache":
		if p, ok := plugin.(*cache.PluginModule); ok {
			m.cache = p
			m.logger.Info("Received cache plugin", "alias", alias)
		}
	}
}

// SetEventBus sets the bus used for product events.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.ProductCreatedV1.ToBase(),
		events.ProductUpdatedV1.ToBase(),
		events.ProductDeletedV1.ToBase(),
	}
}

// RegisterServices registers the catalog request-reply services.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceCreate, json.Unmarshal, json.Marshal, m.handleCreate,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceCreate, err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceUpdate, json.Unmarshal, json.Marshal, m.handleUpdate,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceUpdate, err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceDelete, json.Unmarshal, json.Marshal, m.handleDelete,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceDelete, err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceGet, json.Unmarshal, json.Marshal, m.handleGet,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceGet, err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceFindByCategory, json.Unmarshal, json.Marshal, m.handleFindByCategory,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceFindByCategory, err)
	}

	m.logger.Info("Registered catalog services",
		"services", []string{ServiceCreate, ServiceUpdate, ServiceDelete, ServiceGet, ServiceFindByCategory})
	return nil
}

// Start builds the service over the product store, wrapped by the cache when
// one was injected.
func (m *Module) Start(_ context.Context) error {
	if m.database == nil {
		return fmt.Errorf("database plugin not set - ensure 'database' plugin is registered")
	}

	var repo product.Repository = m.database.CatalogStore()
	if repo == nil {
		return fmt.Errorf("database plugin has no catalog store")
	}
	if m.cache != nil && m.cache.Cache() != nil {
		repo = cache.NewCatalogRepository(repo, m.cache.Cache(), m.logger)
		m.logger.Info("Category listings cached")
	}

	m.service = NewService(repo, m.logger)
	if m.eventBus == nil {
		m.logger.Warn("Event bus not set, product events will not be published")
	}
	m.logger.Info("Catalog module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Catalog module stopped")
	return nil
}

// Service returns the catalog service. Valid after Start.
func (m *Module) Service() *Service {
	return m.service
}

// Health reports whether the module is ready to serve.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{Healthy: false, Message: "service not initialized"}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{"cached": m.cache != nil},
	}
}

func (m *Module) handleCreate(ctx context.Context, req CreateProductRequest, _ *mono.Msg) (ProductResponse, error) {
	saved, err := m.service.CreateProduct(ctx, req.Product)
	if err != nil {
		return ProductResponse{Error: failure.ToReply(err)}, nil
	}

	m.publish(func(bus mono.EventBus) error {
		return events.ProductCreatedV1.Publish(bus, events.ProductCreatedEvent{
			EventID:   uuid.NewString(),
			ProductID: saved.ID.Int64(),
			Name:      saved.Name,
			Category:  string(saved.Category),
			Price:     saved.Price,
			CreatedAt: time.Now(),
		}, nil)
	}, "ProductCreated")

	return ProductResponse{Product: saved}, nil
}

func (m *Module) handleUpdate(ctx context.Context, req UpdateProductRequest, _ *mono.Msg) (ProductResponse, error) {
	saved, err := m.service.UpdateProduct(ctx, req.ID, req.Changes)
	if err != nil {
		return ProductResponse{Error: failure.ToReply(err)}, nil
	}

	m.publish(func(bus mono.EventBus) error {
		return events.ProductUpdatedV1.Publish(bus, events.ProductUpdatedEvent{
			EventID:   uuid.NewString(),
			ProductID: saved.ID.Int64(),
			Name:      saved.Name,
			Category:  string(saved.Category),
			Price:     saved.Price,
			UpdatedAt: time.Now(),
		}, nil)
	}, "ProductUpdated")

	return ProductResponse{Product: saved}, nil
}

func (m *Module) handleDelete(ctx context.Context, req ProductIDRequest, _ *mono.Msg) (AckResponse, error) {
	ack, err := m.service.DeleteProduct(ctx, req.ID)
	if err != nil {
		return AckResponse{Error: failure.ToReply(err)}, nil
	}

	m.publish(func(bus mono.EventBus) error {
		return events.ProductDeletedV1.Publish(bus, events.ProductDeletedEvent{
			EventID:   uuid.NewString(),
			ProductID: req.ID,
			DeletedAt: time.Now(),
		}, nil)
	}, "ProductDeleted")

	return AckResponse{Ack: &ack}, nil
}

func (m *Module) handleGet(ctx context.Context, req ProductIDRequest, _ *mono.Msg) (ProductResponse, error) {
	p, err := m.service.GetProduct(ctx, req.ID)
	if err != nil {
		return ProductResponse{Error: failure.ToReply(err)}, nil
	}
	return ProductResponse{Product: p}, nil
}

func (m *Module) handleFindByCategory(ctx context.Context, req FindByCategoryRequest, _ *mono.Msg) (ProductListResponse, error) {
	products, err := m.service.FindProductByCategory(ctx, req.Category)
	if err != nil {
		return ProductListResponse{Error: failure.ToReply(err)}, nil
	}
	return ProductListResponse{Products: products}, nil
}

// publish is best-effort: failures are logged and never fail the command.
func (m *Module) publish(fn func(mono.EventBus) error, event string) {
	if m.eventBus == nil {
		return
	}
	if err := fn(m.eventBus); err != nil {
		m.logger.Warn("Failed to publish event", "event", event, "error", err)
	}
}
