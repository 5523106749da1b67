// Package compliance holds the behavioural test suite every todo.Repository
// backend must pass.
package compliance

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todos/internal/application/todo"
	"github.com/rezkam/todos/internal/domain"
)

// RunRepositoryComplianceTest runs a standard set of tests against a Repository implementation.
// setup must return a Repository over an empty todos table; it registers its
// own cleanup through t.Cleanup.
func RunRepositoryComplianceTest(t *testing.T, setup func(t *testing.T) todo.Repository) {
	t.Run("EmptyListIsNotNil", func(t *testing.T) {
		repo := setup(t)

		todos, err := repo.ListTodos(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, todos)
		assert.Empty(t, todos)
	})

	t.Run("CreateEchoesInput", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		created, err := repo.CreateTodo(ctx, "Buy milk", false)
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", created.Title)
		assert.False(t, created.Completed)
		assert.NotZero(t, created.ID)

		todos, err := repo.ListTodos(ctx)
		require.NoError(t, err)
		require.Len(t, todos, 1)
		assert.Equal(t, *created, todos[0])
	})

	t.Run("CreateAcceptsEmptyTitle", func(t *testing.T) {
		repo := setup(t)

		created, err := repo.CreateTodo(context.Background(), "", true)
		require.NoError(t, err)
		assert.Equal(t, "", created.Title)
		assert.True(t, created.Completed)
	})

	t.Run("IDsAreUniqueAndIncreasing", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		var ids []int64
		for range 5 {
			created, err := repo.CreateTodo(ctx, fixtureTitle(), false)
			require.NoError(t, err)
			ids = append(ids, created.ID)
		}

		for i := 1; i < len(ids); i++ {
			assert.Greater(t, ids[i], ids[i-1], "ids must strictly increase")
		}

		todos, err := repo.ListTodos(ctx)
		require.NoError(t, err)
		assert.Equal(t, ids, todoIDs(todos))
	})

	t.Run("ListOrderedByIDAfterMixedOperations", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		var created []*domain.Todo
		for range 6 {
			c, err := repo.CreateTodo(ctx, fixtureTitle(), false)
			require.NoError(t, err)
			created = append(created, c)
		}

		require.NoError(t, repo.SetCompleted(ctx, created[4].ID, true))
		require.NoError(t, repo.DeleteTodo(ctx, created[1].ID))
		require.NoError(t, repo.SetCompleted(ctx, created[0].ID, true))
		require.NoError(t, repo.DeleteTodo(ctx, created[3].ID))
		last, err := repo.CreateTodo(ctx, fixtureTitle(), true)
		require.NoError(t, err)

		todos, err := repo.ListTodos(ctx)
		require.NoError(t, err)
		assert.Equal(t,
			[]int64{created[0].ID, created[2].ID, created[4].ID, created[5].ID, last.ID},
			todoIDs(todos))
	})

	t.Run("UpdateChangesOnlyCompleted", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		title := fixtureTitle()
		created, err := repo.CreateTodo(ctx, title, false)
		require.NoError(t, err)

		require.NoError(t, repo.SetCompleted(ctx, created.ID, true))

		todos, err := repo.ListTodos(ctx)
		require.NoError(t, err)
		require.Len(t, todos, 1)
		assert.Equal(t, domain.Todo{ID: created.ID, Title: title, Completed: true}, todos[0])

		require.NoError(t, repo.SetCompleted(ctx, created.ID, false))
		todos, err = repo.ListTodos(ctx)
		require.NoError(t, err)
		assert.False(t, todos[0].Completed)
		assert.Equal(t, title, todos[0].Title)
	})

	t.Run("UpdateNonexistentIsNotAnError", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		require.NoError(t, repo.SetCompleted(ctx, 999999, true))

		todos, err := repo.ListTodos(ctx)
		require.NoError(t, err)
		assert.Empty(t, todos, "update must not create rows")
	})

	t.Run("DeleteNonexistentIsNotAnError", func(t *testing.T) {
		repo := setup(t)

		require.NoError(t, repo.DeleteTodo(context.Background(), 999999))
	})

	t.Run("DeleteRemovesFromList", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		keep, err := repo.CreateTodo(ctx, fixtureTitle(), false)
		require.NoError(t, err)
		gone, err := repo.CreateTodo(ctx, fixtureTitle(), false)
		require.NoError(t, err)

		require.NoError(t, repo.DeleteTodo(ctx, gone.ID))
		// Second delete is a no-op.
		require.NoError(t, repo.DeleteTodo(ctx, gone.ID))

		todos, err := repo.ListTodos(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{keep.ID}, todoIDs(todos))
	})

	t.Run("ConcurrentUpdateAndDelete", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		const rounds = 10
		const updaters = 8

		for range rounds {
			title := fixtureTitle()
			created, err := repo.CreateTodo(ctx, title, false)
			require.NoError(t, err)

			var wg sync.WaitGroup
			errs := make(chan error, updaters+1)
			for range updaters {
				wg.Add(1)
				go func() {
					defer wg.Done()
					errs <- repo.SetCompleted(ctx, created.ID, true)
				}()
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- repo.DeleteTodo(ctx, created.ID)
			}()
			wg.Wait()
			close(errs)

			for err := range errs {
				require.NoError(t, err)
			}

			todos, err := repo.ListTodos(ctx)
			require.NoError(t, err)
			for _, got := range todos {
				if got.ID == created.ID {
					t.Fatalf("row %d survived its delete: %+v", created.ID, got)
				}
			}
		}
	})

	t.Run("ConcurrentUpdatesLeaveConsistentRow", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		title := fixtureTitle()
		created, err := repo.CreateTodo(ctx, title, false)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := range 16 {
			wg.Add(1)
			go func(completed bool) {
				defer wg.Done()
				assert.NoError(t, repo.SetCompleted(ctx, created.ID, completed))
			}(i%2 == 0)
		}
		wg.Wait()

		todos, err := repo.ListTodos(ctx)
		require.NoError(t, err)
		require.Len(t, todos, 1)
		assert.Equal(t, created.ID, todos[0].ID)
		assert.Equal(t, title, todos[0].Title)
	})

	t.Run("ConcurrentCreatesGetDistinctIDs", func(t *testing.T) {
		repo := setup(t)
		ctx := context.Background()

		const n = 20
		ids := make(chan int64, n)
		var wg sync.WaitGroup
		for range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				created, err := repo.CreateTodo(ctx, fixtureTitle(), false)
				if assert.NoError(t, err) {
					ids <- created.ID
				}
			}()
		}
		wg.Wait()
		close(ids)

		seen := make(map[int64]bool, n)
		for id := range ids {
			assert.False(t, seen[id], "duplicate id %d", id)
			seen[id] = true
		}
		assert.Len(t, seen, n)

		todos, err := repo.ListTodos(ctx)
		require.NoError(t, err)
		got := todoIDs(todos)
		assert.IsIncreasing(t, got)
	})
}

func fixtureTitle() string {
	return "todo-" + uuid.NewString()
}

func todoIDs(todos []domain.Todo) []int64 {
	ids := make([]int64, 0, len(todos))
	for _, t := range todos {
		ids = append(ids, t.ID)
	}
	return ids
}
