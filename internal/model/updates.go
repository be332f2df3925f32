package model

import "time"

// Partial-update structs. Each mutation enumerates exactly the fields it may
// change; a nil pointer leaves the stored value untouched. The store stamps
// updated_at on every applied update regardless of which fields are set.

// NoteUpdate is a partial update of a note's content fields.
type NoteUpdate struct {
	Title      *string
	Content    *string
	Tags       *[]string
	AISummary  *string
	SortWeight *float64
}

// IsEmpty reports whether no field is set.
func (u NoteUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.Tags == nil &&
		u.AISummary == nil && u.SortWeight == nil
}

// TagUpdate is a partial update of a tag.
type TagUpdate struct {
	Name  *string
	Color *string
}

// SettingsUpdate is a partial update of the singleton settings record.
type SettingsUpdate struct {
	PreferredModel   *string
	OpenRouterAPIKey *string
	AutoSaveInterval *int
}

// TodoUpdate is a partial update of a todo.
type TodoUpdate struct {
	Content   *string
	Priority  *string
	Completed *bool
}

// ProjectUpdate is a partial update of a project.
type ProjectUpdate struct {
	Name        *string
	Type        *string
	Description *string
	Status      *string
}

// TaskUpdate is a partial update of a task. ProjectID is immutable and
// deliberately absent.
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    *string
	Status      *string
	AssignedTo  *string
	Department  *string
	DueDate     *string
	CompletedAt *time.Time
}
