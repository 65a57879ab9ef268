package ordering

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dvdonadelli/food-challenge/domain/failure"
	"github.com/dvdonadelli/food-challenge/events"
	"github.com/dvdonadelli/food-challenge/modules/database"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/google/uuid"
)

// Module serves the order lifecycle over request-reply and publishes order
// events for the kitchen.
type Module struct {
	logger   types.Logger
	database *database.PluginModule
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

// NewModule creates a new ordering module.
func NewModule(logger types.Logger) *Module {
	return &Module{logger: logger}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "ordering"
}

// SetPlugin receives the database plugin.
func (m *Module) SetPlugin(alias string, plugin mono.PluginModule) {
	if alias != "database" {
		return
	}
	if p, ok := plugin.(*database.PluginModule); ok {
		m.database = p
		m.logger.Info("Received database plugin", "alias", alias)
	}
}

// SetEventBus sets the bus used for order events.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.OrderCreatedV1.ToBase(),
		events.OrderStatusChangedV1.ToBase(),
	}
}

// RegisterServices registers the ordering request-reply services.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceCreate, json.Unmarshal, json.Marshal, m.handleCreate,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceCreate, err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceGet, json.Unmarshal, json.Marshal, m.handleGet,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceGet, err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceAdvanceStatus, json.Unmarshal, json.Marshal, m.handleAdvanceStatus,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceAdvanceStatus, err)
	}

	m.logger.Info("Registered ordering services",
		"services", []string{ServiceCreate, ServiceGet, ServiceAdvanceStatus})
	return nil
}

// Start builds the service over the order store.
func (m *Module) Start(_ context.Context) error {
	if m.database == nil {
		return fmt.Errorf("database plugin not set - ensure 'database' plugin is registered")
	}
	store := m.database.OrderStore()
	if store == nil {
		return fmt.Errorf("database plugin has no order store")
	}

	m.service = NewService(store, m.logger)
	if m.eventBus == nil {
		m.logger.Warn("Event bus not set, order events will not be published")
	}
	m.logger.Info("Ordering module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Ordering module stopped")
	return nil
}

// Service returns the ordering service. Valid after Start.
func (m *Module) Service() *Service {
	return m.service
}

// Health reports whether the module is ready to serve.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{Healthy: false, Message: "service not initialized"}
	}
	return mono.HealthStatus{Healthy: true, Message: "operational"}
}

func (m *Module) handleCreate(ctx context.Context, req CreateOrderRequest, _ *mono.Msg) (OrderResponse, error) {
	o, err := m.service.CreateOrder(ctx, req.CustomerID, req.Items)
	if err != nil {
		return OrderResponse{Error: failure.ToReply(err)}, nil
	}

	if m.eventBus != nil {
		event := events.OrderCreatedEvent{
			EventID:    uuid.NewString(),
			OrderID:    o.ID.Int64(),
			CustomerID: o.CustomerID.Ptr(),
			ItemCount:  len(o.Items),
			Status:     string(o.Status),
			CreatedAt:  o.CreatedAt,
		}
		if err := events.OrderCreatedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish OrderCreated event", "order_id", event.OrderID, "error", err)
		}
	}

	return OrderResponse{Order: o}, nil
}

func (m *Module) handleGet(ctx context.Context, req GetOrderRequest, _ *mono.Msg) (OrderResponse, error) {
	o, err := m.service.GetOrder(ctx, req.ID)
	if err != nil {
		return OrderResponse{Error: failure.ToReply(err)}, nil
	}
	return OrderResponse{Order: o}, nil
}

func (m *Module) handleAdvanceStatus(ctx context.Context, req AdvanceStatusRequest, _ *mono.Msg) (OrderResponse, error) {
	o, from, err := m.service.advance(ctx, req.ID, req.Status)
	if err != nil {
		return OrderResponse{Error: failure.ToReply(err)}, nil
	}

	if m.eventBus != nil {
		event := events.OrderStatusChangedEvent{
			EventID:   uuid.NewString(),
			OrderID:   req.ID,
			From:      string(from),
			To:        string(o.Status),
			ChangedAt: time.Now(),
		}
		if err := events.OrderStatusChangedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish OrderStatusChanged event", "order_id", req.ID, "error", err)
		}
	}

	return OrderResponse{Order: o}, nil
}
