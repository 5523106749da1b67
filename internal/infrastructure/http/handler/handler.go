// Package handler adapts HTTP requests on /todos to the todo service.
package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/todos/internal/application/todo"
	mw "github.com/rezkam/todos/internal/infrastructure/http/middleware"
	"github.com/rezkam/todos/internal/infrastructure/http/openapi"
)

// TodoHandler serves the /todos resource.
type TodoHandler struct {
	todoService *todo.Service
}

// NewTodoHandler creates a new HTTP API handler.
func NewTodoHandler(todoService *todo.Service) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// NewRouter creates an HTTP handler with OpenAPI validation and the todo routes.
// Production code and tests both build the API through this function.
func NewRouter(todoService *todo.Service) (http.Handler, error) {
	h := NewTodoHandler(todoService)

	spec, err := openapi.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(mw.NewValidator(spec, mw.ValidationConfig{MultiError: true}))

		r.Get("/todos", h.ListTodos)
		r.Post("/todos", h.CreateTodo)
		r.Put("/todos/{id}", h.UpdateTodo)
		r.Delete("/todos/{id}", h.DeleteTodo)
	})

	return r, nil
}
