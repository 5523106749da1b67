package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todos/internal/domain"
)

func TestMapTodosToDTO_EmptyEncodesAsArray(t *testing.T) {
	for _, in := range [][]domain.Todo{nil, {}} {
		body, err := json.Marshal(MapTodosToDTO(in))
		require.NoError(t, err)
		assert.Equal(t, "[]", string(body))
	}
}

func TestMapTodoToDTO_UsesWireFieldNames(t *testing.T) {
	body, err := json.Marshal(MapTodoToDTO(&domain.Todo{ID: 7, Title: "Buy milk", Completed: true}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"title":"Buy milk","completed":true}`, string(body))
}

func TestMapTodosToDTO_PreservesOrder(t *testing.T) {
	dtos := MapTodosToDTO([]domain.Todo{
		{ID: 1, Title: "a"},
		{ID: 2, Title: "b", Completed: true},
	})

	require.Len(t, dtos, 2)
	assert.Equal(t, TodoDTO{ID: 1, Title: "a"}, dtos[0])
	assert.Equal(t, TodoDTO{ID: 2, Title: "b", Completed: true}, dtos[1])
}
