package sqlite

import (
	"context"
	"fmt"

	"github.com/rezkam/todos/internal/domain"
)

const (
	listTodosSQL    = `SELECT id, title, completed FROM todos ORDER BY id`
	createTodoSQL   = `INSERT INTO todos (title, completed) VALUES (?, ?) RETURNING id, title, completed`
	setCompletedSQL = `UPDATE todos SET completed = ? WHERE id = ?`
	deleteTodoSQL   = `DELETE FROM todos WHERE id = ?`
)

// todoRow is the scan target for the todos table.
type todoRow struct {
	ID        int64  `db:"id"`
	Title     string `db:"title"`
	Completed bool   `db:"completed"`
}

func (r todoRow) toDomain() domain.Todo {
	return domain.Todo{
		ID:        r.ID,
		Title:     r.Title,
		Completed: r.Completed,
	}
}

// ListTodos returns every todo ordered by ascending ID.
func (s *Store) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	var rows []todoRow
	if err := s.db.SelectContext(ctx, &rows, listTodosSQL); err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}

	todos := make([]domain.Todo, 0, len(rows))
	for _, r := range rows {
		todos = append(todos, r.toDomain())
	}
	return todos, nil
}

// CreateTodo inserts a todo and returns the row with its generated ID.
func (s *Store) CreateTodo(ctx context.Context, title string, completed bool) (*domain.Todo, error) {
	var row todoRow
	if err := s.db.GetContext(ctx, &row, createTodoSQL, title, completed); err != nil {
		return nil, fmt.Errorf("failed to insert todo: %w", err)
	}
	t := row.toDomain()
	return &t, nil
}

// SetCompleted updates the completed flag. An ID with no row is a successful no-op.
func (s *Store) SetCompleted(ctx context.Context, id int64, completed bool) error {
	if _, err := s.db.ExecContext(ctx, setCompletedSQL, completed, id); err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	return nil
}

// DeleteTodo removes the todo. An ID with no row is a successful no-op.
func (s *Store) DeleteTodo(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, deleteTodoSQL, id); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}
