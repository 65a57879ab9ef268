// Package notification keeps a kitchen log fed by order events.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dvdonadelli/food-challenge/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/google/uuid"
)

// Entry types.
const (
	TypeOrderReceived      = "order_received"
	TypeOrderStatusChanged = "order_status_changed"
)

// Entry is one line of the kitchen log.
type Entry struct {
	ID        string    `json:"id"`
	OrderID   int64     `json:"order_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Module consumes order events.
type Module struct {
	logger types.Logger

	mu      sync.RWMutex
	entries []Entry
}

var (
	_ mono.Module                = (*Module)(nil)
	_ mono.EventConsumerModule   = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ NotificationPort           = (*Module)(nil)
)

// NewModule creates a new notification module.
func NewModule(logger types.Logger) *Module {
	return &Module{
		logger:  logger,
		entries: make([]Entry, 0),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "notification"
}

// RegisterEventConsumers subscribes to the ordering events.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.OrderCreatedV1, m.handleOrderCreated, m); err != nil {
		return fmt.Errorf("failed to register OrderCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.OrderStatusChangedV1, m.handleOrderStatusChanged, m); err != nil {
		return fmt.Errorf("failed to register OrderStatusChanged consumer: %w", err)
	}

	m.logger.Info("Registered event consumers", "events", []string{"OrderCreated", "OrderStatusChanged"})
	return nil
}

func (m *Module) handleOrderCreated(_ context.Context, event events.OrderCreatedEvent, _ *mono.Msg) error {
	msg := fmt.Sprintf("Order %d received with %d item(s)", event.OrderID, event.ItemCount)
	if event.CustomerID != nil {
		msg += fmt.Sprintf(" for customer %d", *event.CustomerID)
	}
	m.record(event.OrderID, TypeOrderReceived, msg)
	return nil
}

func (m *Module) handleOrderStatusChanged(_ context.Context, event events.OrderStatusChangedEvent, _ *mono.Msg) error {
	m.record(event.OrderID, TypeOrderStatusChanged,
		fmt.Sprintf("Order %d moved from %s to %s", event.OrderID, event.From, event.To))
	return nil
}

func (m *Module) record(orderID int64, entryType, message string) {
	m.logger.Info("Kitchen notification", "order_id", orderID, "type", entryType, "message", message)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, Entry{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		Type:      entryType,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// RegisterServices exposes the kitchen log to other modules.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceListEntries, json.Unmarshal, json.Marshal, m.handleListEntries,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceListEntries, err)
	}
	return nil
}

func (m *Module) handleListEntries(ctx context.Context, req ListEntriesRequest, _ *mono.Msg) (ListEntriesResponse, error) {
	entries, err := m.ListEntries(ctx, req.OrderID)
	if err != nil {
		return ListEntriesResponse{}, err
	}
	return ListEntriesResponse{Entries: entries}, nil
}

// ListEntries returns a copy of the kitchen log in arrival order, limited to
// orderID when it is non-zero.
func (m *Module) ListEntries(_ context.Context, orderID int64) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		if orderID == 0 || e.OrderID == orderID {
			result = append(result, e)
		}
	}
	return result, nil
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	m.logger.Info("Notification module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Notification module stopped")
	return nil
}
