package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/dvdonadelli/food-challenge/config"
	"github.com/dvdonadelli/food-challenge/modules/api"
	"github.com/dvdonadelli/food-challenge/modules/cache"
	"github.com/dvdonadelli/food-challenge/modules/catalog"
	"github.com/dvdonadelli/food-challenge/modules/database"
	"github.com/dvdonadelli/food-challenge/modules/notification"
	"github.com/dvdonadelli/food-challenge/modules/ordering"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("=== Food Challenge ===")
	log.Printf("HTTP Address: %s", cfg.HTTPAddr)
	log.Printf("Database Driver: %s", cfg.DBDriver)
	if cfg.CacheEnabled() {
		log.Printf("Redis: %s", cfg.RedisAddr)
	}

	level := mono.LogLevelInfo
	if strings.EqualFold(cfg.LogLevel, "error") {
		level = mono.LogLevelError
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(level),
		mono.WithLogFormat(mono.LogFormatText),
		mono.WithNATSPort(cfg.NATSPort),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	logger := app.Logger()

	// Plugins are registered before modules so that SetPlugin runs on every
	// module that declares a use for them.
	dbPlugin := database.NewPluginModule(database.Config{
		Driver: cfg.DBDriver,
		Path:   cfg.DBPath,
		URL:    cfg.DatabaseURL,
		Debug:  cfg.DBDebug,
	}, logger)
	if err := app.RegisterPlugin(dbPlugin, "database"); err != nil {
		log.Fatalf("Failed to register database plugin: %v", err)
	}

	apiCfg := api.Config{
		Addr:            cfg.HTTPAddr,
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
	}
	var cachePlugin *cache.PluginModule
	if cfg.CacheEnabled() {
		cachePlugin = cache.NewPluginModule(cfg.RedisAddr, cfg.CachePrefix, cfg.CacheTTL, logger)
		if err := app.RegisterPlugin(cachePlugin, "cache"); err != nil {
			log.Fatalf("Failed to register cache plugin: %v", err)
		}
		apiCfg.RedisHost, apiCfg.RedisPort = cfg.RedisHostPort()
	}

	catalogModule := catalog.NewModule(logger)
	orderingModule := ordering.NewModule(logger)
	apiModule := api.NewModule(apiCfg, logger)

	// GET /health aggregates these checks.
	apiModule.AddHealthCheck("database", dbPlugin)
	if cachePlugin != nil {
		apiModule.AddHealthCheck("cache", cachePlugin)
	}
	apiModule.AddHealthCheck("catalog", catalogModule)
	apiModule.AddHealthCheck("ordering", orderingModule)

	app.Register(catalogModule)
	app.Register(orderingModule)
	app.Register(notification.NewModule(logger))
	app.Register(apiModule)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	log.Println("=== Application Started ===")
	log.Println("Endpoints:")
	log.Println("  GET    /health                     - Health check")
	log.Println("  GET    /api/v1/categories          - List categories")
	log.Println("  POST   /api/v1/products            - Create product")
	log.Println("  GET    /api/v1/products?category=  - Find products by category")
	log.Println("  GET    /api/v1/products/:id        - Get product")
	log.Println("  PUT    /api/v1/products/:id        - Update product")
	log.Println("  DELETE /api/v1/products/:id        - Delete product")
	log.Println("  POST   /api/v1/orders              - Place order")
	log.Println("  GET    /api/v1/orders/:id          - Get order")
	log.Println("  PATCH  /api/v1/orders/:id/status   - Advance order status")
	log.Println("  GET    /api/v1/notifications       - Kitchen log")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown")

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}
