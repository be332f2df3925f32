// Package state holds the in-memory containers that mirror each store
// collection. Containers are constructed explicitly at startup and passed
// by reference; they carry no internal locking because a single execution
// context owns all mutations. Two reconciliation strategies are used:
// reload (refetch the whole collection after a mutation) and patch (edit
// the in-memory copy directly, rolling back on store failure).
package state

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/model"
	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/store"
)

// Notes mirrors the note collection and maintains a filtered, ordered view.
// Reload strategy: every successful mutation refetches the collection.
type Notes struct {
	store store.Store

	notes    []model.Note
	filtered []model.Note
	current  *model.Note

	searchQuery string
	filterTags  []string
}

// NewNotes creates a note container backed by the given store.
func NewNotes(s store.Store) *Notes {
	return &Notes{store: s}
}

// Load refetches the whole collection and recomputes the filtered view.
// On failure the previous cache is kept and the error is only logged.
func (n *Notes) Load(ctx context.Context) {
	notes, err := n.store.GetNotes(ctx)
	if err != nil {
		log.Printf("loading notes: %v", err)
		return
	}
	n.notes = notes
	n.applyFilter()

	// Re-resolve the current selection against the fresh copy.
	if n.current != nil {
		n.Select(n.current.ID)
	}
}

// All returns the unfiltered in-memory notes.
func (n *Notes) All() []model.Note { return n.notes }

// Filtered returns the current filtered, ordered view.
func (n *Notes) Filtered() []model.Note { return n.filtered }

// Current returns the selected note, or nil.
func (n *Notes) Current() *model.Note { return n.current }

// Select marks the note with the given id as current. Selecting an unknown
// id clears the selection.
func (n *Notes) Select(id string) {
	for i := range n.notes {
		if n.notes[i].ID == id {
			n.current = &n.notes[i]
			return
		}
	}
	n.current = nil
}

// Create inserts a new untitled note, reloads, and selects it.
func (n *Notes) Create(ctx context.Context) (*model.Note, error) {
	created, err := n.store.CreateNote(ctx, model.Note{
		Title: model.DefaultNoteTitle,
		Tags:  []string{},
	})
	if err != nil {
		log.Printf("creating note: %v", err)
		return nil, err
	}
	n.Load(ctx)
	n.Select(created.ID)
	return created, nil
}

// UpdateTitle changes a note's title.
func (n *Notes) UpdateTitle(ctx context.Context, id, title string) error {
	return n.update(ctx, id, model.NoteUpdate{Title: &title})
}

// UpdateContent changes a note's content.
func (n *Notes) UpdateContent(ctx context.Context, id, content string) error {
	return n.update(ctx, id, model.NoteUpdate{Content: &content})
}

// UpdateTags replaces a note's tag references.
func (n *Notes) UpdateTags(ctx context.Context, id string, tags []string) error {
	return n.update(ctx, id, model.NoteUpdate{Tags: &tags})
}

// UpdateSummary stores an AI-generated summary on a note.
func (n *Notes) UpdateSummary(ctx context.Context, id, summary string) error {
	return n.update(ctx, id, model.NoteUpdate{AISummary: &summary})
}

func (n *Notes) update(ctx context.Context, id string, upd model.NoteUpdate) error {
	if err := n.store.UpdateNote(ctx, id, upd); err != nil {
		log.Printf("updating note %s: %v", id, err)
		return err
	}
	n.Load(ctx)
	n.Select(id)
	return nil
}

// SaveCurrent persists the current note's in-memory content.
func (n *Notes) SaveCurrent(ctx context.Context) error {
	if n.current == nil {
		return nil
	}
	return n.UpdateContent(ctx, n.current.ID, n.current.Content)
}

// Delete removes a note. If it was selected, selection moves to the first
// remaining note.
func (n *Notes) Delete(ctx context.Context, id string) error {
	if err := n.store.DeleteNote(ctx, id); err != nil {
		log.Printf("deleting note %s: %v", id, err)
		return err
	}

	wasCurrent := n.current != nil && n.current.ID == id
	n.current = nil
	n.Load(ctx)
	if wasCurrent && len(n.notes) > 0 {
		n.Select(n.notes[0].ID)
	}
	return nil
}

// Search sets the free-text query and recomputes the filtered view.
func (n *Notes) Search(query string) {
	n.searchQuery = query
	n.applyFilter()
}

// FilterByTags sets the tag-id filter and recomputes the filtered view.
// A note matches when it carries any of the given tags.
func (n *Notes) FilterByTags(tagIDs []string) {
	n.filterTags = tagIDs
	n.applyFilter()
}

// Reorder moves the note at fromIndex in the filtered view to toIndex and
// recomputes every note's sort weight as (position+1)*10, persisting all
// weights in one write before reloading.
func (n *Notes) Reorder(ctx context.Context, fromIndex, toIndex int) error {
	if fromIndex < 0 || fromIndex >= len(n.filtered) ||
		toIndex < 0 || toIndex >= len(n.filtered) {
		return fmt.Errorf("reorder indexes out of range: %d -> %d", fromIndex, toIndex)
	}

	ordered := make([]model.Note, len(n.filtered))
	copy(ordered, n.filtered)
	moved := ordered[fromIndex]
	ordered = append(ordered[:fromIndex], ordered[fromIndex+1:]...)
	ordered = append(ordered[:toIndex], append([]model.Note{moved}, ordered[toIndex:]...)...)

	weights := make([]store.NoteWeight, len(ordered))
	for i, note := range ordered {
		weights[i] = store.NoteWeight{ID: note.ID, Weight: float64(i+1) * 10}
	}

	if err := n.store.UpdateNoteWeights(ctx, weights); err != nil {
		log.Printf("reordering notes: %v", err)
		return err
	}
	n.Load(ctx)
	return nil
}

// applyFilter recomputes the filtered view: free-text match on title and
// content (case-insensitive substring, ANDed with the tag filter), any-of
// tag match, then the three-tier ordering. Weighted notes sort by ascending
// weight and always come before unweighted ones; unweighted notes sort by
// updated_at descending.
func (n *Notes) applyFilter() {
	filtered := make([]model.Note, 0, len(n.notes))

	query := strings.ToLower(n.searchQuery)
	for _, note := range n.notes {
		if query != "" {
			title := strings.ToLower(note.Title)
			content := strings.ToLower(note.Content)
			if !strings.Contains(title, query) && !strings.Contains(content, query) {
				continue
			}
		}
		if len(n.filterTags) > 0 {
			match := false
			for _, tagID := range n.filterTags {
				if note.HasTag(tagID) {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		filtered = append(filtered, note)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		switch {
		case a.SortWeight != nil && b.SortWeight != nil:
			return *a.SortWeight < *b.SortWeight
		case a.SortWeight != nil:
			return true
		case b.SortWeight != nil:
			return false
		default:
			return a.UpdatedAt.After(b.UpdatedAt)
		}
	})

	n.filtered = filtered
}
