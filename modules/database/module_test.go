package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(_ string, _ ...any)         {}
func (m *mockLogger) Info(_ string, _ ...any)          {}
func (m *mockLogger) Warn(_ string, _ ...any)          {}
func (m *mockLogger) Error(_ string, _ ...any)         {}
func (m *mockLogger) With(_ ...any) types.Logger       { return m }
func (m *mockLogger) WithModule(_ string) types.Logger { return m }
func (m *mockLogger) WithError(_ error) types.Logger   { return m }

func TestPluginModule_SQLiteLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewPluginModule(Config{Path: filepath.Join(t.TempDir(), "food.db")}, &mockLogger{})

	assert.Equal(t, "database", m.Name())
	assert.False(t, m.Health(ctx).Healthy)

	require.NoError(t, m.Start(ctx))
	require.NotNil(t, m.CatalogStore())
	require.NotNil(t, m.OrderStore())

	health := m.Health(ctx)
	assert.True(t, health.Healthy)
	assert.Equal(t, DriverSQLite, health.Details["driver"])

	saved, err := m.CatalogStore().Save(ctx, burger())
	require.NoError(t, err)
	assert.True(t, saved.ID.IsAssigned())

	require.NoError(t, m.Stop(ctx))
}

func TestPluginModule_PostgresRequiresURL(t *testing.T) {
	m := NewPluginModule(Config{Driver: DriverPostgres}, &mockLogger{})
	err := m.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database URL is required")
	assert.False(t, m.Health(context.Background()).Healthy)
}

func TestPluginModule_UnsupportedDriver(t *testing.T) {
	m := NewPluginModule(Config{Driver: "oracle"}, &mockLogger{})
	assert.Error(t, m.Start(context.Background()))
}
