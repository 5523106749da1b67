package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSwagger(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)

	todos := doc.Paths.Find("/todos")
	require.NotNil(t, todos)
	assert.NotNil(t, todos.Get)
	assert.NotNil(t, todos.Post)

	byID := doc.Paths.Find("/todos/{id}")
	require.NotNil(t, byID)
	assert.NotNil(t, byID.Put)
	assert.NotNil(t, byID.Delete)
	assert.Nil(t, byID.Patch)

	create := doc.Components.Schemas["CreateTodoRequest"].Value
	assert.ElementsMatch(t, []string{"title", "completed"}, create.Required)
}

func TestGetSwagger_ReturnsIndependentCopies(t *testing.T) {
	first, err := GetSwagger()
	require.NoError(t, err)
	first.Info.Title = "mutated"

	second, err := GetSwagger()
	require.NoError(t, err)
	assert.Equal(t, "Todos API", second.Info.Title)
}
