package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/rezkam/todos/internal/infrastructure/persistence/sqlite/migrations"
)

// DefaultBusyTimeout is how long a statement waits on a locked database.
const DefaultBusyTimeout = 5 * time.Second

// DBConfig holds SQLite connection configuration.
type DBConfig struct {
	DSN         string        // sqlite://path, file:path or a bare path
	BusyTimeout time.Duration // default: 5s
	AutoMigrate bool          // Apply embedded migrations after opening
}

// NewStoreWithConfig opens the database, optionally migrates it and verifies the connection.
//
// SQLite allows a single writer, so the pool is capped at one connection.
// That also keeps ":memory:" databases alive for the life of the store.
func NewStoreWithConfig(ctx context.Context, cfg DBConfig) (*Store, error) {
	busyTimeout := cfg.BusyTimeout
	if busyTimeout <= 0 {
		busyTimeout = DefaultBusyTimeout
	}

	db, err := sqlx.Open("sqlite", driverDSN(cfg.DSN, busyTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := Migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return NewStore(db), nil
}

// NewSQLiteStore opens a store with default settings.
func NewSQLiteStore(ctx context.Context, dsn string) (*Store, error) {
	return NewStoreWithConfig(ctx, DBConfig{DSN: dsn})
}

// Migrate applies all pending embedded migrations to db.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	goose.SetBaseFS(migrations.FS)

	if err := goose.UpContext(ctx, db.DB, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	slog.InfoContext(ctx, "sqlite migrations applied")
	return nil
}

// driverDSN converts a configured connection string into the form the
// modernc driver expects and appends connection pragmas.
func driverDSN(dsn string, busyTimeout time.Duration) string {
	path := strings.TrimPrefix(dsn, "sqlite://")

	pragmas := fmt.Sprintf("_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", busyTimeout.Milliseconds())
	if strings.Contains(path, "?") {
		return path + "&" + pragmas
	}
	return path + "?" + pragmas
}
