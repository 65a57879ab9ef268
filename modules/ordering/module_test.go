package ordering

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dvdonadelli/food-challenge/domain/failure"
	"github.com/dvdonadelli/food-challenge/domain/ident"
	"github.com/dvdonadelli/food-challenge/domain/order"
	"github.com/dvdonadelli/food-challenge/modules/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestModule starts an ordering module over a SQLite database plugin.
func createTestModule(t *testing.T) *Module {
	t.Helper()
	ctx := context.Background()

	plugin := database.NewPluginModule(database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "orders.db"),
	}, &mockLogger{})
	require.NoError(t, plugin.Start(ctx))
	t.Cleanup(func() {
		_ = plugin.Stop(context.Background())
	})

	module := NewModule(&mockLogger{})
	module.SetPlugin("database", plugin)
	require.NoError(t, module.Start(ctx))
	return module
}

func TestModule_IgnoresOtherPlugins(t *testing.T) {
	module := NewModule(&mockLogger{})
	module.SetPlugin("cache", nil)

	err := module.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database plugin not set")
}

func TestModule_OrderLifecycle(t *testing.T) {
	module := createTestModule(t)
	ctx := context.Background()

	created, err := module.handleCreate(ctx, CreateOrderRequest{
		CustomerID: ident.New(3),
		Items: []order.OrderItem{
			{ProductID: 1, Quantity: 2, Observations: "no onion"},
			{ProductID: 4, Quantity: 1, ToGo: true},
		},
	}, nil)
	require.NoError(t, err)
	require.Nil(t, created.Error)
	require.NotNil(t, created.Order)
	assert.Equal(t, order.StatusReceived, created.Order.Status)
	id := created.Order.ID.Int64()

	for _, next := range []string{"IN_PREPARATION", "READY", "COMPLETED"} {
		resp, err := module.handleAdvanceStatus(ctx, AdvanceStatusRequest{ID: id, Status: next}, nil)
		require.NoError(t, err)
		require.Nil(t, resp.Error, "advance to %s", next)
		assert.Equal(t, order.Status(next), resp.Order.Status)
	}

	got, err := module.handleGet(ctx, GetOrderRequest{ID: id}, nil)
	require.NoError(t, err)
	require.Nil(t, got.Error)
	assert.Equal(t, order.StatusCompleted, got.Order.Status)
	assert.Equal(t, ident.New(3), got.Order.CustomerID)
	assert.Len(t, got.Order.Items, 2)

	terminal, err := module.handleAdvanceStatus(ctx, AdvanceStatusRequest{ID: id, Status: "CANCELED"}, nil)
	require.NoError(t, err)
	require.NotNil(t, terminal.Error)
	assert.Equal(t, failure.CodeInvalidParameter, terminal.Error.Code)
}

func TestModule_EmptyOrder(t *testing.T) {
	module := createTestModule(t)
	ctx := context.Background()

	created, err := module.handleCreate(ctx, CreateOrderRequest{}, nil)
	require.NoError(t, err)
	require.Nil(t, created.Error)
	assert.Equal(t, order.StatusReceived, created.Order.Status)

	got, err := module.handleGet(ctx, GetOrderRequest{ID: created.Order.ID.Int64()}, nil)
	require.NoError(t, err)
	require.Nil(t, got.Error)
	assert.Empty(t, got.Order.Items)
}

func TestModule_HandlerErrors(t *testing.T) {
	module := createTestModule(t)
	ctx := context.Background()

	invalid, err := module.handleCreate(ctx, CreateOrderRequest{
		Items: []order.OrderItem{{ProductID: 1}},
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, invalid.Error)
	assert.Equal(t, failure.CodeInvalidParameter, invalid.Error.Code)

	missing, err := module.handleGet(ctx, GetOrderRequest{ID: 404}, nil)
	require.NoError(t, err)
	require.NotNil(t, missing.Error)
	assert.Equal(t, failure.CodeNoObjectFound, missing.Error.Code)

	bogus, err := module.handleAdvanceStatus(ctx, AdvanceStatusRequest{ID: 404, Status: "SHIPPED"}, nil)
	require.NoError(t, err)
	require.NotNil(t, bogus.Error)
	assert.Equal(t, failure.CodeInvalidParameter, bogus.Error.Code)
}

func TestModule_Metadata(t *testing.T) {
	module := createTestModule(t)

	assert.Equal(t, "ordering", module.Name())
	assert.Len(t, module.EmitEvents(), 2)
	assert.NotNil(t, module.Service())
	assert.True(t, module.Health(context.Background()).Healthy)
}
