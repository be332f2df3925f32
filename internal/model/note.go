package model

import "time"

// DefaultNoteTitle is the title assigned to freshly created notes.
const DefaultNoteTitle = "Untitled note"

// Note is a single notepad entry. Tags holds tag IDs by reference; a
// referenced tag is not guaranteed to exist (resolution may fail and
// callers must handle a dangling id).
type Note struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Tags      []string  `json:"tags" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	AISummary string    `json:"ai_summary" db:"ai_summary"`

	// SortWeight, when set, pins the note ahead of recency ordering.
	// Lower weights sort first.
	SortWeight *float64 `json:"sort_weight,omitempty" db:"sort_weight"`
}

// HasTag reports whether the note references the given tag id.
func (n Note) HasTag(tagID string) bool {
	for _, id := range n.Tags {
		if id == tagID {
			return true
		}
	}
	return false
}
