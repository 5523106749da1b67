package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rezkam/todos/internal/domain"
)

const (
	listTodosSQL    = `SELECT id, title, completed FROM todos ORDER BY id`
	createTodoSQL   = `INSERT INTO todos (title, completed) VALUES ($1, $2) RETURNING id, title, completed`
	setCompletedSQL = `UPDATE todos SET completed = $1 WHERE id = $2`
	deleteTodoSQL   = `DELETE FROM todos WHERE id = $1`
)

// ListTodos returns every todo ordered by ascending ID.
func (s *Store) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	rows, err := s.pool.Query(ctx, listTodosSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}

	todos, err := pgx.CollectRows(rows, scanTodo)
	if err != nil {
		return nil, fmt.Errorf("failed to scan todos: %w", err)
	}

	return todos, nil
}

// CreateTodo inserts a todo and returns the row with its generated ID.
func (s *Store) CreateTodo(ctx context.Context, title string, completed bool) (*domain.Todo, error) {
	var t domain.Todo
	err := s.pool.QueryRow(ctx, createTodoSQL, title, completed).Scan(&t.ID, &t.Title, &t.Completed)
	if err != nil {
		return nil, fmt.Errorf("failed to insert todo: %w", err)
	}
	return &t, nil
}

// SetCompleted updates the completed flag. Rows affected is not inspected:
// an ID with no row is a successful no-op.
func (s *Store) SetCompleted(ctx context.Context, id int64, completed bool) error {
	if _, err := s.pool.Exec(ctx, setCompletedSQL, completed, id); err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	return nil
}

// DeleteTodo removes the todo. An ID with no row is a successful no-op.
func (s *Store) DeleteTodo(ctx context.Context, id int64) error {
	if _, err := s.pool.Exec(ctx, deleteTodoSQL, id); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

func scanTodo(row pgx.CollectableRow) (domain.Todo, error) {
	var t domain.Todo
	err := row.Scan(&t.ID, &t.Title, &t.Completed)
	return t, err
}
