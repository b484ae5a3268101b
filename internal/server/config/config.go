// Package config handles configuration for the bookmarks server: defaults,
// an optional JSON file, an optional .env file plus the process environment,
// and finally command-line flags, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"
)

var (
	ErrMissingDatabaseDSN = errors.New("database DSN is required")
	ErrMissingSecretKey   = errors.New("JWT secret key is required")

	ErrInvalidHealthCheckInterval = errors.New("health check interval must be positive")
	ErrNegativeShutdownTimeout    = errors.New("shutdown timeout must not be negative")
)

// Config holds runtime settings for the server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the public HTTP API.
//   - EndpointAddrGRPC: bind address for the gRPC health endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Required.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Required, never logged.
//   - ShutdownTimeout: upper bound for graceful shutdown of both servers.
//   - HealthCheckInterval: how often the database is pinged for health status.
//   - OtelEndpoint: OTLP/HTTP collector URL; tracing is off when empty.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrHTTP    string        `env:"HTTP_ADDR"`
	EndpointAddrGRPC    string        `env:"GRPC_ADDR"`
	DatabaseDSN         string        `env:"DATABASE_URL"`
	SecretKey           string        `env:"JWT_SECRET"`
	ShutdownTimeout     time.Duration `env:"SHUTDOWN_TIMEOUT"`
	HealthCheckInterval time.Duration `env:"HEALTH_CHECK_INTERVAL"`
	OtelEndpoint        string        `env:"OTEL_ENDPOINT"`
	LogLevel            string        `env:"LOG_LEVEL"`
}

// LoadDefaults populates Config with development defaults. The DSN and the
// secret have no default on purpose.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":3333"
	c.EndpointAddrGRPC = ":50051"
	c.ShutdownTimeout = 10 * time.Second
	c.HealthCheckInterval = 5 * time.Second
	c.LogLevel = "info"
}

// Validate reports every missing or out-of-range setting.
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseDSN == "" {
		errs = append(errs, ErrMissingDatabaseDSN)
	}
	if c.SecretKey == "" {
		errs = append(errs, ErrMissingSecretKey)
	}
	if c.HealthCheckInterval <= 0 {
		errs = append(errs, ErrInvalidHealthCheckInterval)
	}
	if c.ShutdownTimeout < 0 {
		errs = append(errs, ErrNegativeShutdownTimeout)
	}
	return errors.Join(errs...)
}

// LogValue keeps the secret and the DSN password out of logs.
func (c Config) LogValue() slog.Value {
	secret := ""
	if c.SecretKey != "" {
		secret = "[REDACTED]"
	}
	return slog.GroupValue(
		slog.String("http_addr", c.EndpointAddrHTTP),
		slog.String("grpc_addr", c.EndpointAddrGRPC),
		slog.String("database_dsn", redactDSN(c.DatabaseDSN)),
		slog.String("secret_key", secret),
		slog.Duration("shutdown_timeout", c.ShutdownTimeout),
		slog.Duration("health_check_interval", c.HealthCheckInterval),
		slog.String("otel_endpoint", c.OtelEndpoint),
		slog.String("log_level", c.LogLevel),
	)
}

func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		if dsn == "" {
			return ""
		}
		return "[REDACTED]"
	}
	return u.Redacted()
}

// LoadConfig builds a Config from os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load applies defaults, then the JSON file named by -c/-config, then the
// environment (after loading .env or the file named by -env-file), then flags,
// and validates the result.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
