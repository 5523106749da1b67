package env

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

type innerConfig struct {
	DSN string `env:"TEST_DSN"`
}

func (c *innerConfig) Validate() error {
	if c.DSN == "" {
		return errors.New("dsn required")
	}
	return nil
}

type testConfig struct {
	Host     string        `env:"TEST_HOST"`
	Port     int           `env:"TEST_PORT"`
	Enabled  bool          `env:"TEST_ENABLED"`
	Timeout  time.Duration `env:"TEST_TIMEOUT"`
	Limit    int64         `env:"TEST_LIMIT"`
	Origins  []string      `env:"TEST_ORIGINS"`
	Untagged string
	Inner    innerConfig
}

func TestLoadWith(t *testing.T) {
	var cfg testConfig
	err := LoadWith(&cfg, mapLookup(map[string]string{
		"TEST_HOST":    "example.com",
		"TEST_PORT":    "9090",
		"TEST_ENABLED": "true",
		"TEST_TIMEOUT": "1m30s",
		"TEST_LIMIT":   "1048576",
		"TEST_ORIGINS": "https://a.example, https://b.example,,",
		"TEST_DSN":     "postgres://localhost/todos",
	}))
	require.NoError(t, err)

	assert.Equal(t, "example.com", cfg.Host)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, int64(1048576), cfg.Limit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins)
	assert.Equal(t, "postgres://localhost/todos", cfg.Inner.DSN)
	assert.Empty(t, cfg.Untagged)
}

func TestLoadWith_UnsetKeepsPrepopulatedValues(t *testing.T) {
	cfg := testConfig{Host: "127.0.0.1", Port: 8080}
	err := LoadWith(&cfg, mapLookup(map[string]string{"TEST_DSN": "x"}))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadWith_EmptyStringRespected(t *testing.T) {
	cfg := testConfig{Host: "127.0.0.1"}
	err := LoadWith(&cfg, mapLookup(map[string]string{"TEST_HOST": "", "TEST_DSN": "x"}))
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Host)
}

func TestLoadWith_InvalidValue(t *testing.T) {
	var cfg testConfig
	err := LoadWith(&cfg, mapLookup(map[string]string{"TEST_PORT": "eighty", "TEST_DSN": "x"}))
	require.Error(t, err)

	var invalid ErrInvalidValue
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "TEST_PORT", invalid.EnvVar)
	assert.Equal(t, "Port", invalid.Field)
	assert.Equal(t, "eighty", invalid.Value)
}

func TestLoadWith_InvalidDuration(t *testing.T) {
	var cfg testConfig
	err := LoadWith(&cfg, mapLookup(map[string]string{"TEST_TIMEOUT": "5", "TEST_DSN": "x"}))

	var invalid ErrInvalidValue
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "TEST_TIMEOUT", invalid.EnvVar)
}

func TestLoadWith_NestedValidation(t *testing.T) {
	var cfg testConfig
	err := LoadWith(&cfg, mapLookup(map[string]string{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dsn required")
}

func TestLoadWith_NotStructPointer(t *testing.T) {
	var cfg testConfig

	for _, v := range []any{cfg, "string", (*testConfig)(nil)} {
		err := LoadWith(v, mapLookup(nil))
		var target ErrNotStructPointer
		assert.ErrorAs(t, err, &target, "%T", v)
	}
}

func TestLoadWith_UnsupportedType(t *testing.T) {
	type badConfig struct {
		Ratio float64 `env:"TEST_RATIO"`
	}

	var cfg badConfig
	err := LoadWith(&cfg, mapLookup(map[string]string{"TEST_RATIO": "0.5"}))

	var unsupported ErrUnsupportedType
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "float64", unsupported.Kind)
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("TODOS_DOTENV_A=from-file\nTODOS_DOTENV_B=from-file\n"), 0o600))

	t.Setenv("TODOS_DOTENV_B", "from-env")
	// Registers cleanup so the variable set by the file does not leak.
	t.Setenv("TODOS_DOTENV_A", "")
	require.NoError(t, os.Unsetenv("TODOS_DOTENV_A"))

	require.NoError(t, LoadDotenv(path, filepath.Join(dir, "missing.env")))

	assert.Equal(t, "from-file", os.Getenv("TODOS_DOTENV_A"))
	assert.Equal(t, "from-env", os.Getenv("TODOS_DOTENV_B"), "existing variables win")
}
