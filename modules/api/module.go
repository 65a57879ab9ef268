// Package api exposes the catalog and ordering services over HTTP.
package api

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/dvdonadelli/food-challenge/modules/catalog"
	"github.com/dvdonadelli/food-challenge/modules/notification"
	"github.com/dvdonadelli/food-challenge/modules/ordering"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/storage/redis/v3"
)

// Config holds the HTTP server settings.
type Config struct {
	Addr            string
	RateLimitMax    int
	RateLimitWindow time.Duration
	// RedisHost and RedisPort back the rate limiter; an empty host keeps the
	// counters in memory.
	RedisHost string
	RedisPort int
}

// HealthChecker is implemented by modules and plugins that report health.
type HealthChecker interface {
	Health(ctx context.Context) mono.HealthStatus
}

type namedCheck struct {
	name    string
	checker HealthChecker
}

// Module is the driving adapter that serves the REST API.
type Module struct {
	cfg           Config
	logger        types.Logger
	app           *fiber.App
	storage       *redis.Storage
	catalog       catalog.CatalogPort
	ordering      ordering.OrderingPort
	notifications notification.NotificationPort
	checks        []namedCheck
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.DependentModule       = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new API module.
func NewModule(cfg Config, logger types.Logger) *Module {
	return &Module{cfg: cfg, logger: logger}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// Dependencies returns the modules whose services the API calls.
func (m *Module) Dependencies() []string {
	return []string{"catalog", "ordering", "notification"}
}

// SetDependencyServiceContainer wires an adapter for each dependency.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "catalog":
		m.catalog = catalog.NewCatalogAdapter(container)
	case "ordering":
		m.ordering = ordering.NewOrderingAdapter(container)
	case "notification":
		m.notifications = notification.NewNotificationAdapter(container)
	}
}

// AddHealthCheck includes checker in the GET /health report under name.
// Call before Start.
func (m *Module) AddHealthCheck(name string, checker HealthChecker) {
	m.checks = append(m.checks, namedCheck{name: name, checker: checker})
}

// checkHealth runs every registered check.
func (m *Module) checkHealth(ctx context.Context) (bool, map[string]any) {
	healthy := true
	details := make(map[string]any, len(m.checks))
	for _, c := range m.checks {
		status := c.checker.Health(ctx)
		if !status.Healthy {
			healthy = false
		}
		details[c.name] = map[string]any{
			"healthy": status.Healthy,
			"message": status.Message,
		}
	}
	return healthy, details
}

// Start builds the Fiber app and begins listening.
func (m *Module) Start(_ context.Context) error {
	if m.catalog == nil {
		return fmt.Errorf("catalog dependency not set")
	}
	if m.ordering == nil {
		return fmt.Errorf("ordering dependency not set")
	}
	if m.notifications == nil {
		return fmt.Errorf("notification dependency not set")
	}

	m.app = m.newApp(NewHandlers(m.catalog, m.ordering, m.notifications, m.logger))

	errCh := make(chan error, 1)
	go func() {
		if err := m.app.Listen(m.cfg.Addr); err != nil {
			errCh <- err
		}
	}()

	// catch immediate failures such as the port being in use
	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	m.logger.Info("HTTP server started", "addr", m.cfg.Addr)
	return nil
}

// newApp assembles middleware and routes.
func (m *Module) newApp(h *Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Food Challenge",
		DisableStartupMessage: true,
		ErrorHandler:          m.errorHandler,
	})
	h.health = m.checkHealth

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))
	if m.cfg.RateLimitMax > 0 {
		app.Use(m.rateLimiter())
	}

	h.Register(app)
	return app
}

// rateLimiter limits requests per client IP. Counters live in Redis when it
// is reachable so every instance shares the same window.
func (m *Module) rateLimiter() fiber.Handler {
	cfg := limiter.Config{
		Max:        m.cfg.RateLimitMax,
		Expiration: m.cfg.RateLimitWindow,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{
				Error:   "rate_limited",
				Message: "Too many requests",
			})
		},
	}

	if m.cfg.RedisHost != "" {
		addr := net.JoinHostPort(m.cfg.RedisHost, strconv.Itoa(m.cfg.RedisPort))
		// redis.New panics when it cannot connect, so dial first.
		if conn, err := net.DialTimeout("tcp", addr, 2*time.Second); err != nil {
			m.logger.Warn("Redis unreachable, rate limiting in memory", "addr", addr, "error", err)
		} else {
			conn.Close()
			m.storage = redis.New(redis.Config{
				Host:     m.cfg.RedisHost,
				Port:     m.cfg.RedisPort,
				PoolSize: 10,
			})
			cfg.Storage = m.storage
			m.logger.Info("Rate limiter backed by Redis", "addr", addr)
		}
	}

	return limiter.New(cfg)
}

// Stop gracefully shuts down the HTTP server.
func (m *Module) Stop(ctx context.Context) error {
	if m.app != nil {
		if err := m.app.ShutdownWithContext(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}
	if m.storage != nil {
		if err := m.storage.Close(); err != nil {
			m.logger.Warn("Failed to close rate limit storage", "error", err)
		}
	}
	m.logger.Info("HTTP server stopped")
	return nil
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.app == nil {
		return mono.HealthStatus{Healthy: false, Message: "server not started"}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"addr":             m.cfg.Addr,
			"rate_limit_redis": m.storage != nil,
		},
	}
}

// errorHandler handles errors that escape the handlers.
func (m *Module) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code >= fiber.StatusInternalServerError {
		m.logger.Error("HTTP error", "code", code, "message", message, "error", err)
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
