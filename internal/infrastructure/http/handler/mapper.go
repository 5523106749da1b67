package handler

import "github.com/rezkam/todos/internal/domain"

// TodoDTO is the wire representation of a todo.
type TodoDTO struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// MapTodoToDTO converts domain.Todo to TodoDTO.
func MapTodoToDTO(t *domain.Todo) TodoDTO {
	return TodoDTO{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
	}
}

// MapTodosToDTO converts a slice of todos. The result is never nil so it encodes as [].
func MapTodosToDTO(todos []domain.Todo) []TodoDTO {
	dtos := make([]TodoDTO, 0, len(todos))
	for i := range todos {
		dtos = append(dtos, MapTodoToDTO(&todos[i]))
	}
	return dtos
}
