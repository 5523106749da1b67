package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todos/internal/application/todo"
	"github.com/rezkam/todos/internal/infrastructure/persistence/compliance"
	"github.com/rezkam/todos/internal/infrastructure/persistence/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	dsn := "sqlite://" + filepath.Join(t.TempDir(), "todos.db")
	store, err := sqlite.NewStoreWithConfig(context.Background(), sqlite.DBConfig{
		DSN:         dsn,
		AutoMigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_Compliance(t *testing.T) {
	compliance.RunRepositoryComplianceTest(t, func(t *testing.T) todo.Repository {
		return newTestStore(t)
	})
}

func TestSQLiteStore_InMemory(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.NewStoreWithConfig(ctx, sqlite.DBConfig{
		DSN:         "sqlite://:memory:",
		AutoMigrate: true,
	})
	require.NoError(t, err)
	defer store.Close()

	created, err := store.CreateTodo(ctx, "in memory", false)
	require.NoError(t, err)

	todos, err := store.ListTodos(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, created.ID, todos[0].ID)
}

func TestSQLiteStore_IDsNotReusedAfterDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.CreateTodo(ctx, "first", false)
	require.NoError(t, err)
	require.NoError(t, store.DeleteTodo(ctx, first.ID))

	second, err := store.CreateTodo(ctx, "second", false)
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func TestSQLiteStore_Ping(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestSQLiteStore_MigrateIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, sqlite.Migrate(context.Background(), store.DB()))
}

func TestSQLiteStore_MissingTableFails(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.NewStoreWithConfig(ctx, sqlite.DBConfig{
		DSN: "sqlite://" + filepath.Join(t.TempDir(), "empty.db"),
	})
	require.NoError(t, err)
	defer store.Close()

	_, err = store.ListTodos(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query todos")
}
