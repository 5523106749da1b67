package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rezkam/todos/internal/env"
)

// DefaultShutdownTimeout bounds graceful shutdown when TODOS_SHUTDOWN_TIMEOUT is unset.
const DefaultShutdownTimeout = 10 * time.Second

// ServerConfig holds all configuration for the server binary.
type ServerConfig struct {
	Database        DatabaseConfig
	HTTP            HTTPConfig
	CORS            CORSConfig
	Observability   ObservabilityConfig
	ShutdownTimeout time.Duration `env:"TODOS_SHUTDOWN_TIMEOUT"`
}

// HTTPConfig holds HTTP server configuration.
// Zero values are replaced by the HTTP layer's defaults.
type HTTPConfig struct {
	Host              string        `env:"TODOS_HTTP_HOST"`
	Port              string        `env:"TODOS_HTTP_PORT"`
	ReadTimeout       time.Duration `env:"TODOS_HTTP_READ_TIMEOUT"`
	WriteTimeout      time.Duration `env:"TODOS_HTTP_WRITE_TIMEOUT"`
	IdleTimeout       time.Duration `env:"TODOS_HTTP_IDLE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `env:"TODOS_HTTP_READ_HEADER_TIMEOUT"`
	MaxHeaderBytes    int           `env:"TODOS_HTTP_MAX_HEADER_BYTES"`
	MaxBodyBytes      int64         `env:"TODOS_HTTP_MAX_BODY_BYTES"`
}

// CORSConfig holds cross-origin policy. An empty list allows every origin.
type CORSConfig struct {
	AllowedOrigins []string `env:"TODOS_CORS_ALLOWED_ORIGINS"`
}

// LoadServerConfig loads and validates server configuration from the process environment.
func LoadServerConfig() (*ServerConfig, error) {
	return LoadServerConfigWith(os.LookupEnv)
}

// LoadServerConfigWith loads and validates server configuration using lookup.
func LoadServerConfigWith(lookup env.LookupFunc) (*ServerConfig, error) {
	cfg := &ServerConfig{
		ShutdownTimeout: DefaultShutdownTimeout,
		Observability: ObservabilityConfig{
			ServiceName: DefaultServiceName,
		},
	}

	if err := env.LoadWith(cfg, lookup); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	return cfg, nil
}
