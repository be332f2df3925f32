package state_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/state"
	"github.com/kongxiangyu0727-debug/Carmen-ai/tests/testutil"
)

func TestTagsCreateRejectsDuplicateName(t *testing.T) {
	s := testutil.NewTestStore(t)
	tags := state.NewTags(s)
	ctx := context.Background()

	_, err := tags.Create(ctx, "Work", "#f56c6c")
	require.NoError(t, err)

	// Same name with different casing counts as a duplicate.
	_, err = tags.Create(ctx, "work", "")
	assert.Error(t, err)
	assert.Len(t, tags.All(), 1)
}

func TestTagsUpdateRejectsCollision(t *testing.T) {
	s := testutil.NewTestStore(t)
	tags := state.NewTags(s)
	ctx := context.Background()

	work, err := tags.Create(ctx, "Work", "")
	require.NoError(t, err)
	_, err = tags.Create(ctx, "Life", "")
	require.NoError(t, err)

	err = tags.Update(ctx, work.ID, "LIFE", "")
	assert.Error(t, err, "renaming onto another tag's name must fail")

	// Renaming a tag to its own name (recoloring) is allowed.
	require.NoError(t, tags.Update(ctx, work.ID, "Work", "#000000"))
}

func TestTagsDeleteRemovesFromNotes(t *testing.T) {
	s := testutil.NewTestStore(t)
	tags := state.NewTags(s)
	notes := state.NewNotes(s)
	ctx := context.Background()

	tag, err := tags.Create(ctx, "Work", "")
	require.NoError(t, err)

	created, err := notes.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, notes.UpdateTags(ctx, created.ID, []string{tag.ID}))

	require.NoError(t, tags.Delete(ctx, tag.ID))
	assert.Empty(t, tags.All())

	notes.Load(ctx)
	require.Len(t, notes.All(), 1)
	assert.Empty(t, notes.All()[0].Tags)
}
