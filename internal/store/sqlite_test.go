package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/model"
	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/store"
)

// Reopening an existing database must skip already-applied migrations and
// keep the data intact.
func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "notes.db")

	s, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)

	created, err := s.CreateNote(ctx, model.Note{Title: "persisted"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = store.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetNoteByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Title)
}
