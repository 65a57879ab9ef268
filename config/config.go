// Package config loads runtime settings from the environment.
package config

import (
	"net"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every setting the service reads at startup.
type Config struct {
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":3000"`
	DBDriver        string        `envconfig:"DB_DRIVER" default:"sqlite"`
	DBPath          string        `envconfig:"DB_PATH" default:"food.db"`
	DatabaseURL     string        `envconfig:"DATABASE_URL"`
	DBDebug         bool          `envconfig:"DB_DEBUG" default:"false"`
	RedisAddr       string        `envconfig:"REDIS_ADDR" default:""`
	CachePrefix     string        `envconfig:"CACHE_PREFIX" default:"catalog:"`
	CacheTTL        time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	RateLimitMax    int           `envconfig:"RATE_LIMIT_MAX" default:"100"`
	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	NATSPort        int           `envconfig:"NATS_PORT" default:"4222"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// CacheEnabled reports whether a Redis address was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// RedisHostPort splits RedisAddr into host and port.
// Returns defaults (127.0.0.1:6379) for invalid or missing values.
func (c *Config) RedisHostPort() (string, int) {
	const defaultHost = "127.0.0.1"
	const defaultPort = 6379

	host, portStr, err := net.SplitHostPort(c.RedisAddr)
	if err != nil {
		return defaultHost, defaultPort
	}
	if host == "" {
		host = defaultHost
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = defaultPort
	}
	return host, port
}
