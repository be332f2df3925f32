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

func TestNotesCreateSelectsNew(t *testing.T) {
	s := testutil.NewTestStore(t)
	notes := state.NewNotes(s)
	ctx := context.Background()

	created, err := notes.Create(ctx)
	require.NoError(t, err)

	require.NotNil(t, notes.Current())
	assert.Equal(t, created.ID, notes.Current().ID)
	assert.Equal(t, model.DefaultNoteTitle, notes.Current().Title)
	assert.Len(t, notes.All(), 1)
}

func TestNotesMirrorMatchesStore(t *testing.T) {
	s := testutil.NewTestStore(t)
	notes := state.NewNotes(s)
	ctx := context.Background()

	a, err := notes.Create(ctx)
	require.NoError(t, err)
	_, err = notes.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, notes.UpdateTitle(ctx, a.ID, "renamed"))
	require.NoError(t, notes.Delete(ctx, a.ID))

	stored, err := s.GetNotes(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, stored, notes.All(), "cache must mirror storage after mutations")
}

func TestNotesSearchAndTagFilter(t *testing.T) {
	s := testutil.NewTestStore(t)
	notes := state.NewNotes(s)
	ctx := context.Background()

	mk := func(title, content string, tags []string) {
		t.Helper()
		if tags == nil {
			tags = []string{}
		}
		_, err := s.CreateNote(ctx, model.Note{Title: title, Content: content, Tags: tags})
		require.NoError(t, err)
	}
	mk("foo note", "", []string{"t1"})
	mk("bar note", "contains FOO inside", nil)
	mk("plain", "nothing here", []string{"t2"})

	notes.Load(ctx)

	// Case-insensitive substring on title or content.
	notes.Search("foo")
	require.Len(t, notes.Filtered(), 2)

	// Tag filter is ANDed with the text query.
	notes.FilterByTags([]string{"t1"})
	require.Len(t, notes.Filtered(), 1)
	assert.Equal(t, "foo note", notes.Filtered()[0].Title)

	// Any-of semantics across several tag ids.
	notes.Search("")
	notes.FilterByTags([]string{"t1", "t2"})
	require.Len(t, notes.Filtered(), 2)

	notes.FilterByTags(nil)
	assert.Len(t, notes.Filtered(), 3)
}

func TestNotesOrdering(t *testing.T) {
	s := testutil.NewTestStore(t)
	notes := state.NewNotes(s)
	ctx := context.Background()

	// Created in order: oldest updated first.
	oldest, err := s.CreateNote(ctx, model.Note{Title: "oldest"})
	require.NoError(t, err)
	middle, err := s.CreateNote(ctx, model.Note{Title: "middle"})
	require.NoError(t, err)
	newest, err := s.CreateNote(ctx, model.Note{Title: "newest"})
	require.NoError(t, err)

	// Pin the oldest note ahead of recency with a weight.
	w := 10.0
	require.NoError(t, s.UpdateNote(ctx, oldest.ID, model.NoteUpdate{SortWeight: &w}))

	notes.Load(ctx)

	ordered := notes.Filtered()
	require.Len(t, ordered, 3)
	assert.Equal(t, oldest.ID, ordered[0].ID, "weighted notes come first")
	assert.Equal(t, middle.ID, ordered[2].ID, "unweighted notes sort by recency")
	assert.Equal(t, newest.ID, ordered[1].ID)
}

func TestNotesReorderAssignsWeights(t *testing.T) {
	s := testutil.NewTestStore(t)
	notes := state.NewNotes(s)
	ctx := context.Background()

	for _, title := range []string{"a", "b", "c"} {
		_, err := s.CreateNote(ctx, model.Note{Title: title})
		require.NoError(t, err)
	}
	notes.Load(ctx)

	// Unweighted ordering is by recency, so the view starts c, b, a.
	require.Equal(t, "c", notes.Filtered()[0].Title)

	// Move the last note to the front.
	require.NoError(t, notes.Reorder(ctx, 2, 0))

	ordered := notes.Filtered()
	require.Len(t, ordered, 3)
	assert.Equal(t, "a", ordered[0].Title)
	assert.Equal(t, "c", ordered[1].Title)
	assert.Equal(t, "b", ordered[2].Title)

	// Every note now carries a weight of (position+1)*10.
	for i, note := range ordered {
		require.NotNil(t, note.SortWeight)
		assert.Equal(t, float64(i+1)*10, *note.SortWeight)
	}
}

func TestNotesReorderOutOfRange(t *testing.T) {
	s := testutil.NewTestStore(t)
	notes := state.NewNotes(s)
	ctx := context.Background()

	_, err := notes.Create(ctx)
	require.NoError(t, err)

	assert.Error(t, notes.Reorder(ctx, 0, 5))
	assert.Error(t, notes.Reorder(ctx, -1, 0))
}

func TestNotesDeleteReselects(t *testing.T) {
	s := testutil.NewTestStore(t)
	notes := state.NewNotes(s)
	ctx := context.Background()

	first, err := notes.Create(ctx)
	require.NoError(t, err)
	second, err := notes.Create(ctx)
	require.NoError(t, err)

	notes.Select(second.ID)
	require.NoError(t, notes.Delete(ctx, second.ID))

	require.NotNil(t, notes.Current())
	assert.Equal(t, first.ID, notes.Current().ID)
}

func TestNotesUpdateMissingKeepsCache(t *testing.T) {
	s := testutil.NewTestStore(t)
	notes := state.NewNotes(s)
	ctx := context.Background()

	_, err := notes.Create(ctx)
	require.NoError(t, err)

	err = notes.UpdateTitle(ctx, "no-such-id", "x")
	assert.True(t, store.IsNotFound(err))
	assert.Len(t, notes.All(), 1)
}
