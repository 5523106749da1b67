package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/todos/internal/domain"
	"github.com/rezkam/todos/internal/infrastructure/http/response"
)

// createTodoRequest uses pointers so absent fields are distinguishable from zero values.
type createTodoRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

type updateTodoRequest struct {
	Completed *bool `json:"completed"`
}

// ListTodos handles GET /todos.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todoService.ListTodos(r.Context())
	if err != nil {
		response.InternalError(w, r, err)
		return
	}

	response.OK(w, r, MapTodosToDTO(todos))
}

// CreateTodo handles POST /todos.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON")
		return
	}
	if req.Title == nil {
		response.ValidationError(w, r, "title", "required field missing")
		return
	}
	if req.Completed == nil {
		response.ValidationError(w, r, "completed", "required field missing")
		return
	}

	created, err := h.todoService.CreateTodo(r.Context(), *req.Title, *req.Completed)
	if err != nil {
		response.InternalError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "todo created", "todo_id", created.ID)
	response.Created(w, r, MapTodoToDTO(created))
}

// UpdateTodo handles PUT /todos/{id}. Only the completed flag changes.
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := todoIDParam(w, r)
	if !ok {
		return
	}

	var req updateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON")
		return
	}
	if req.Completed == nil {
		response.ValidationError(w, r, "completed", "required field missing")
		return
	}

	if err := h.todoService.SetCompleted(r.Context(), id, *req.Completed); err != nil {
		response.InternalError(w, r, err)
		return
	}

	response.OKEmpty(w)
}

// DeleteTodo handles DELETE /todos/{id}.
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := todoIDParam(w, r)
	if !ok {
		return
	}

	if err := h.todoService.DeleteTodo(r.Context(), id); err != nil {
		response.InternalError(w, r, err)
		return
	}

	response.NoContent(w)
}

// todoIDParam parses the {id} path segment, writing a 400 when it is not a valid ID.
func todoIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := domain.ParseTodoID(chi.URLParam(r, "id"))
	if err != nil {
		response.ValidationError(w, r, "id", err.Error())
		return 0, false
	}
	return id, true
}
