package state_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/model"
	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/state"
	"github.com/kongxiangyu0727-debug/Carmen-ai/tests/testutil"
)

func TestTodosAddAndCounts(t *testing.T) {
	s := testutil.NewTestStore(t)
	todos := state.NewTodos(s)
	ctx := context.Background()

	_, err := todos.Add(ctx, "buy milk", "")
	require.NoError(t, err)
	high, err := todos.Add(ctx, "pay rent", model.TodoPriorityHigh)
	require.NoError(t, err)

	assert.Equal(t, 2, todos.Count())
	assert.Len(t, todos.Pending(), 2)
	assert.Empty(t, todos.Completed())
	assert.Equal(t, model.TodoPriorityHigh, high.Priority)
}

func TestTodosToggle(t *testing.T) {
	s := testutil.NewTestStore(t)
	todos := state.NewTodos(s)
	ctx := context.Background()

	created, err := todos.Add(ctx, "task", "")
	require.NoError(t, err)

	require.NoError(t, todos.Toggle(ctx, created.ID))
	assert.Len(t, todos.Completed(), 1)

	require.NoError(t, todos.Toggle(ctx, created.ID))
	assert.Empty(t, todos.Completed())

	// Storage agrees with the cache.
	stored, err := s.GetTodos(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.False(t, stored[0].Completed)
}

func TestTodosToggleRollsBackOnFailure(t *testing.T) {
	s := testutil.NewTestStore(t)
	todos := state.NewTodos(s)
	ctx := context.Background()

	created, err := todos.Add(ctx, "task", "")
	require.NoError(t, err)

	// Delete the row behind the container's back so the write fails.
	require.NoError(t, s.DeleteTodo(ctx, created.ID))

	err = todos.Toggle(ctx, created.ID)
	require.Error(t, err)

	// The in-memory copy must be back to its previous state.
	require.Equal(t, 1, todos.Count())
	assert.False(t, todos.All()[0].Completed)
}

func TestTodosClearCompleted(t *testing.T) {
	s := testutil.NewTestStore(t)
	todos := state.NewTodos(s)
	ctx := context.Background()

	done, err := todos.Add(ctx, "done", "")
	require.NoError(t, err)
	_, err = todos.Add(ctx, "pending", "")
	require.NoError(t, err)

	require.NoError(t, todos.Toggle(ctx, done.ID))
	require.NoError(t, todos.ClearCompleted(ctx))

	require.Equal(t, 1, todos.Count())
	assert.Equal(t, "pending", todos.All()[0].Content)

	// With nothing completed, clearing is a no-op.
	require.NoError(t, todos.ClearCompleted(ctx))
	assert.Equal(t, 1, todos.Count())
}

func TestTodosToggleAll(t *testing.T) {
	s := testutil.NewTestStore(t)
	todos := state.NewTodos(s)
	ctx := context.Background()

	// Empty list: a no-op that must not touch storage.
	require.NoError(t, todos.ToggleAll(ctx, true))

	for _, content := range []string{"a", "b", "c"} {
		_, err := todos.Add(ctx, content, "")
		require.NoError(t, err)
	}

	require.NoError(t, todos.ToggleAll(ctx, true))
	assert.Len(t, todos.Completed(), 3)

	stored, err := s.GetTodos(ctx)
	require.NoError(t, err)
	for _, todo := range stored {
		assert.True(t, todo.Completed)
	}

	require.NoError(t, todos.ToggleAll(ctx, false))
	assert.Len(t, todos.Pending(), 3)
}

func TestTodosUpdateContentRollsBack(t *testing.T) {
	s := testutil.NewTestStore(t)
	todos := state.NewTodos(s)
	ctx := context.Background()

	created, err := todos.Add(ctx, "original", "")
	require.NoError(t, err)

	// Blank content is rejected by the store; the cache must revert.
	err = todos.UpdateContent(ctx, created.ID, "   ")
	require.Error(t, err)
	assert.Equal(t, "original", todos.All()[0].Content)
}
