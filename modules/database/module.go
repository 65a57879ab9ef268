// Package database owns the persistent stores for products and orders. It
// runs as a mono plugin so it starts before, and stops after, the modules
// that use it.
package database

import (
	"context"
	"fmt"

	"github.com/dvdonadelli/food-challenge/domain/order"
	"github.com/dvdonadelli/food-challenge/domain/product"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects and configures the backing database.
type Config struct {
	Driver string
	Path   string
	URL    string
	Debug  bool
}

// PluginModule provides the product and order stores.
type PluginModule struct {
	container types.ServiceContainer
	cfg       Config
	logger    types.Logger

	db   *gorm.DB
	pool *pgxpool.Pool

	catalog product.Repository
	orders  order.Repository
}

// Compile-time interface checks.
var (
	_ mono.PluginModule          = (*PluginModule)(nil)
	_ mono.HealthCheckableModule = (*PluginModule)(nil)
)

// NewPluginModule creates a new database plugin.
func NewPluginModule(cfg Config, logger types.Logger) *PluginModule {
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}
	return &PluginModule{cfg: cfg, logger: logger}
}

// Name returns the module name.
func (m *PluginModule) Name() string {
	return "database"
}

// Start opens the configured database and prepares the schema.
func (m *PluginModule) Start(ctx context.Context) error {
	switch m.cfg.Driver {
	case DriverSQLite:
		if err := m.startSQLite(); err != nil {
			return err
		}
	case DriverPostgres:
		if err := m.startPostgres(ctx); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported database driver %q", m.cfg.Driver)
	}

	m.logger.Info("Database plugin started", "driver", m.cfg.Driver)
	return nil
}

func (m *PluginModule) startSQLite() error {
	logLevel := logger.Silent
	if m.cfg.Debug {
		logLevel = logger.Info
	}

	db, err := OpenSQLite(m.cfg.Path, logLevel)
	if err != nil {
		return err
	}

	m.db = db
	m.catalog = NewGormCatalogRepository(db)
	m.orders = NewGormOrderRepository(db)
	return nil
}

func (m *PluginModule) startPostgres(ctx context.Context) error {
	if m.cfg.URL == "" {
		return fmt.Errorf("database URL is required for the %s driver", DriverPostgres)
	}
	pool, err := pgxpool.New(ctx, m.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}
	if err := MigratePostgres(ctx, pool); err != nil {
		pool.Close()
		return err
	}

	m.pool = pool
	m.catalog = NewPostgresCatalogRepository(pool)
	m.orders = NewPostgresOrderRepository(pool)
	return nil
}

// OpenSQLite opens a SQLite database through GORM and migrates both tables.
// Unique violations are translated to gorm.ErrDuplicatedKey.
func OpenSQLite(path string, level logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&productRecord{}, &orderRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// Stop closes the database connection.
func (m *PluginModule) Stop(_ context.Context) error {
	if m.pool != nil {
		m.pool.Close()
	}
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				return fmt.Errorf("failed to close database: %w", err)
			}
		}
	}
	m.logger.Info("Database plugin stopped")
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

// CatalogStore returns the product store. Valid after Start.
func (m *PluginModule) CatalogStore() product.Repository {
	return m.catalog
}

// OrderStore returns the order store. Valid after Start.
func (m *PluginModule) OrderStore() order.Repository {
	return m.orders
}

// Health pings the database.
func (m *PluginModule) Health(ctx context.Context) mono.HealthStatus {
	var err error
	switch {
	case m.pool != nil:
		err = m.pool.Ping(ctx)
	case m.db != nil:
		sqlDB, dbErr := m.db.DB()
		if dbErr != nil {
			err = dbErr
		} else {
			err = sqlDB.PingContext(ctx)
		}
	default:
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": m.cfg.Driver,
		},
	}
}
