package config

import (
	"errors"
	"fmt"

	"github.com/rezkam/todos/internal/env"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	DatabaseURL string `env:"TODOS_TEST_DATABASE_URL"`
}

// Validate validates the test configuration.
func (c *TestConfig) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("TODOS_TEST_DATABASE_URL is required")
	}
	return nil
}

// LoadTestConfig loads and validates test configuration from environment.
func LoadTestConfig() (*TestConfig, error) {
	cfg := &TestConfig{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load test config: %w", err)
	}

	return cfg, nil
}
