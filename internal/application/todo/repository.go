package todo

import (
	"context"

	"github.com/rezkam/todos/internal/domain"
)

// Repository defines storage operations for todo management.
// Each method maps to exactly one SQL statement; implementations must be
// safe for concurrent use because the service adds no locking of its own.
type Repository interface {
	// ListTodos returns every todo ordered by ascending ID.
	// An empty table yields an empty, non-nil slice.
	ListTodos(ctx context.Context) ([]domain.Todo, error)

	// CreateTodo inserts a todo and returns it as persisted, including the
	// ID generated by the store.
	CreateTodo(ctx context.Context, title string, completed bool) (*domain.Todo, error)

	// SetCompleted updates the completed flag of the todo with the given ID.
	// Matching no row is not an error.
	SetCompleted(ctx context.Context, id int64, completed bool) error

	// DeleteTodo removes the todo with the given ID.
	// Matching no row is not an error.
	DeleteTodo(ctx context.Context, id int64) error
}
