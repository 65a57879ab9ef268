package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/redis/go-redis/v9"
)

// PluginModule provides the Redis cache as a mono plugin.
// Plugins start first and stop last.
type PluginModule struct {
	container types.ServiceContainer
	logger    types.Logger
	redisAddr string
	prefix    string
	ttl       time.Duration

	client *redis.Client
	cache  *Cache
}

// Compile-time interface checks.
var (
	_ mono.PluginModule          = (*PluginModule)(nil)
	_ mono.HealthCheckableModule = (*PluginModule)(nil)
)

// NewPluginModule creates a new cache plugin.
func NewPluginModule(redisAddr, prefix string, ttl time.Duration, logger types.Logger) *PluginModule {
	return &PluginModule{
		logger:    logger,
		redisAddr: redisAddr,
		prefix:    prefix,
		ttl:       ttl,
	}
}

// Name returns the module name.
func (m *PluginModule) Name() string {
	return "cache"
}

// Start connects to Redis.
func (m *PluginModule) Start(ctx context.Context) error {
	m.client = redis.NewClient(&redis.Options{
		Addr:         m.redisAddr,
		PoolSize:     50,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := m.client.Ping(ctx).Err(); err != nil {
		m.client.Close()
		m.client = nil
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	m.cache = New(m.client, m.prefix, m.ttl)
	m.logger.Info("Cache plugin started",
		"redis_addr", m.redisAddr,
		"prefix", m.prefix,
		"ttl", m.ttl.String())
	return nil
}

// Stop closes the Redis connection.
func (m *PluginModule) Stop(_ context.Context) error {
	if m.client != nil {
		if err := m.client.Close(); err != nil {
			return fmt.Errorf("failed to close Redis connection: %w", err)
		}
	}
	m.logger.Info("Cache plugin stopped")
	return nil
}

// SetContainer sets the service container for this plugin.
func (m *PluginModule) SetContainer(container types.ServiceContainer) {
	m.container = container
}

// Container returns the service container for this plugin.
func (m *PluginModule) Container() types.ServiceContainer {
	return m.container
}

// Cache returns the cache. Valid after Start.
func (m *PluginModule) Cache() *Cache {
	return m.cache
}

// Health pings Redis and reports the cache counters.
func (m *PluginModule) Health(ctx context.Context) mono.HealthStatus {
	if m.cache == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "cache not initialized",
		}
	}
	if err := m.cache.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("health check failed: %v", err),
		}
	}

	stats := m.cache.Stats()
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"redis_addr": m.redisAddr,
			"prefix":     m.prefix,
			"ttl":        m.ttl.String(),
			"hits":       stats.Hits,
			"misses":     stats.Misses,
			"hit_rate":   stats.HitRate,
		},
	}
}
