package state_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/model"
	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/state"
	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/store"
	"github.com/kongxiangyu0727-debug/Carmen-ai/tests/testutil"
)

func TestProjectsCreateAndLookup(t *testing.T) {
	s := testutil.NewTestStore(t)
	projects := state.NewProjects(s)
	ctx := context.Background()

	created, err := projects.Create(ctx, "Launch", "marketing", "ship it")
	require.NoError(t, err)

	found := projects.ByID(created.ID)
	require.NotNil(t, found)
	assert.Equal(t, model.ProjectStatusActive, found.Status)
	assert.Equal(t, []string{"marketing"}, projects.Types())
}

func TestProjectsStatusTransitions(t *testing.T) {
	s := testutil.NewTestStore(t)
	projects := state.NewProjects(s)
	ctx := context.Background()

	created, err := projects.Create(ctx, "Launch", "", "")
	require.NoError(t, err)

	require.NoError(t, projects.Complete(ctx, created.ID))
	assert.Equal(t, model.ProjectStatusCompleted, projects.ByID(created.ID).Status)

	require.NoError(t, projects.Archive(ctx, created.ID))
	assert.Equal(t, model.ProjectStatusArchived, projects.ByID(created.ID).Status)

	require.NoError(t, projects.Activate(ctx, created.ID))
	assert.Equal(t, model.ProjectStatusActive, projects.ByID(created.ID).Status)
}

func TestProjectsCreateTaskRequiresKnownProject(t *testing.T) {
	s := testutil.NewTestStore(t)
	projects := state.NewProjects(s)
	ctx := context.Background()

	_, err := projects.CreateTask(ctx, "no-such-project", model.Task{Title: "orphan"})
	assert.True(t, store.IsNotFound(err))
}

func TestProjectsDeleteDropsTasks(t *testing.T) {
	s := testutil.NewTestStore(t)
	projects := state.NewProjects(s)
	ctx := context.Background()

	doomed, err := projects.Create(ctx, "doomed", "", "")
	require.NoError(t, err)
	kept, err := projects.Create(ctx, "kept", "", "")
	require.NoError(t, err)

	_, err = projects.CreateTask(ctx, doomed.ID, model.Task{Title: "t1"})
	require.NoError(t, err)
	survivor, err := projects.CreateTask(ctx, kept.ID, model.Task{Title: "t2"})
	require.NoError(t, err)

	require.NoError(t, projects.Delete(ctx, doomed.ID))

	assert.Nil(t, projects.ByID(doomed.ID))
	require.Len(t, projects.Tasks(), 1)
	assert.Equal(t, survivor.ID, projects.Tasks()[0].ID)

	// Storage agrees.
	stored, err := s.GetTasks(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, survivor.ID, stored[0].ID)
}

func TestProjectsTaskFilters(t *testing.T) {
	s := testutil.NewTestStore(t)
	projects := state.NewProjects(s)
	ctx := context.Background()

	p, err := projects.Create(ctx, "board", "", "")
	require.NoError(t, err)

	_, err = projects.CreateTask(ctx, p.ID, model.Task{
		Title: "urgent", Priority: model.TaskPriorityHigh, Department: "eng",
	})
	require.NoError(t, err)
	low, err := projects.CreateTask(ctx, p.ID, model.Task{
		Title: "later", Priority: model.TaskPriorityLow, Department: "ops",
	})
	require.NoError(t, err)

	assert.Len(t, projects.TasksByProject(p.ID), 2)
	assert.Len(t, projects.TasksByStatus(model.TaskStatusTodo), 2)
	assert.Len(t, projects.TasksByPriority(model.TaskPriorityHigh), 1)

	byDept := projects.TasksByDepartment("ops")
	require.Len(t, byDept, 1)
	assert.Equal(t, low.ID, byDept[0].ID)
}

func TestProjectsBatchStatusUpdate(t *testing.T) {
	s := testutil.NewTestStore(t)
	projects := state.NewProjects(s)
	ctx := context.Background()

	p, err := projects.Create(ctx, "board", "", "")
	require.NoError(t, err)

	a, err := projects.CreateTask(ctx, p.ID, model.Task{Title: "a"})
	require.NoError(t, err)
	b, err := projects.CreateTask(ctx, p.ID, model.Task{Title: "b"})
	require.NoError(t, err)
	c, err := projects.CreateTask(ctx, p.ID, model.Task{Title: "c"})
	require.NoError(t, err)

	err = projects.BatchUpdateTaskStatus(ctx, []string{a.ID, b.ID}, model.TaskStatusDone)
	require.NoError(t, err)

	assert.Equal(t, model.TaskStatusDone, projects.TaskByID(a.ID).Status)
	assert.Equal(t, model.TaskStatusDone, projects.TaskByID(b.ID).Status)
	assert.Equal(t, model.TaskStatusTodo, projects.TaskByID(c.ID).Status)
}

func TestProjectsUpdateTaskPatchesCache(t *testing.T) {
	s := testutil.NewTestStore(t)
	projects := state.NewProjects(s)
	ctx := context.Background()

	p, err := projects.Create(ctx, "board", "", "")
	require.NoError(t, err)
	task, err := projects.CreateTask(ctx, p.ID, model.Task{Title: "draft"})
	require.NoError(t, err)

	title := "final"
	assigned := "sam"
	err = projects.UpdateTask(ctx, task.ID, model.TaskUpdate{
		Title:      &title,
		AssignedTo: &assigned,
	})
	require.NoError(t, err)

	cached := projects.TaskByID(task.ID)
	require.NotNil(t, cached)
	assert.Equal(t, "final", cached.Title)
	assert.Equal(t, "sam", cached.AssignedTo)
}
