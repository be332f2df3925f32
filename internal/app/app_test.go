package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/model"
)

func newTestApp(t *testing.T, seed bool) *App {
	t.Helper()

	cfg := &model.AppConfig{}
	cfg.Database.Path = ":memory:"
	cfg.Seed.Enabled = seed

	a, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := a.Close(); err != nil {
			t.Errorf("closing app: %v", err)
		}
	})

	// Store a credential up front so Init never consults the system keyring.
	require.NoError(t, a.Settings.SetAPIKey(context.Background(), "sk-test"))

	return a
}

func TestInitWithoutSeedLeavesCollectionsEmpty(t *testing.T) {
	a := newTestApp(t, false)
	a.Init(context.Background())

	assert.Empty(t, a.Notes.All())
	assert.Empty(t, a.Tags.All())
	assert.Zero(t, a.Todos.Count())
	assert.Empty(t, a.Projects.All())
}

func TestInitSeedsOnce(t *testing.T) {
	a := newTestApp(t, true)
	ctx := context.Background()

	a.Init(ctx)

	require.NotEmpty(t, a.Notes.All())
	assert.Len(t, a.Tags.All(), 3)
	assert.Equal(t, 3, a.Todos.Count())
	assert.Len(t, a.Projects.All(), 2)
	assert.NotEmpty(t, a.Projects.Tasks())

	// A second Init must not duplicate the sample data.
	a.Init(ctx)
	assert.Len(t, a.Tags.All(), 3)
	assert.Equal(t, 3, a.Todos.Count())
	assert.Len(t, a.Projects.All(), 2)
}

func TestDeleteTagRefreshesNotes(t *testing.T) {
	a := newTestApp(t, false)
	ctx := context.Background()
	a.Init(ctx)

	tag, err := a.Tags.Create(ctx, "Work", "")
	require.NoError(t, err)
	note, err := a.Notes.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, a.Notes.UpdateTags(ctx, note.ID, []string{tag.ID}))

	require.NoError(t, a.DeleteTag(ctx, tag.ID))

	require.Len(t, a.Notes.All(), 1)
	assert.Empty(t, a.Notes.All()[0].Tags)
}
