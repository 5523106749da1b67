package todo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rezkam/todos/internal/domain"
)

// Service provides business logic for todo management.
// It holds no todo state; the repository is the only source of truth.
type Service struct {
	repo Repository
}

// NewService creates a new todo service backed by repo.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListTodos returns all todos ordered by ascending ID.
func (s *Service) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	todos, err := s.repo.ListTodos(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	if todos == nil {
		todos = []domain.Todo{}
	}
	return todos, nil
}

// CreateTodo stores a new todo. Titles are stored as given, empty included.
func (s *Service) CreateTodo(ctx context.Context, title string, completed bool) (*domain.Todo, error) {
	created, err := s.repo.CreateTodo(ctx, title, completed)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return created, nil
}

// SetCompleted changes the completed flag of a todo.
// Updating an ID that does not exist succeeds without effect.
func (s *Service) SetCompleted(ctx context.Context, id int64, completed bool) error {
	slog.DebugContext(ctx, "updating todo",
		"todo_id", id,
		"completed", completed)

	if err := s.repo.SetCompleted(ctx, id, completed); err != nil {
		return fmt.Errorf("failed to update todo %d: %w", id, err)
	}
	return nil
}

// DeleteTodo removes a todo. Deleting an ID that does not exist succeeds.
func (s *Service) DeleteTodo(ctx context.Context, id int64) error {
	if err := s.repo.DeleteTodo(ctx, id); err != nil {
		return fmt.Errorf("failed to delete todo %d: %w", id, err)
	}
	return nil
}
