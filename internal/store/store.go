package store

import (
	"context"

	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/model"
)

// NoteWeight pairs a note id with its new sort weight for a bulk
// reorder write.
type NoteWeight struct {
	ID     string
	Weight float64
}

// Store defines the persistence interface for the five collections: notes,
// tags, settings, todos, and projects with their tasks.
type Store interface {
	// === Notes ===

	CreateNote(ctx context.Context, note model.Note) (*model.Note, error)
	UpdateNote(ctx context.Context, id string, upd model.NoteUpdate) error
	DeleteNote(ctx context.Context, id string) error
	GetNoteByID(ctx context.Context, id string) (*model.Note, error)
	GetNotes(ctx context.Context) ([]model.Note, error)
	UpdateNoteWeights(ctx context.Context, weights []NoteWeight) error

	// === Tags ===

	CreateTag(ctx context.Context, tag model.Tag) (*model.Tag, error)
	UpdateTag(ctx context.Context, id string, upd model.TagUpdate) error
	DeleteTag(ctx context.Context, id string) error
	GetTags(ctx context.Context) ([]model.Tag, error)

	// === Settings (singleton) ===

	GetSettings(ctx context.Context) (*model.Settings, error)
	PutSettings(ctx context.Context, settings model.Settings) error

	// === Todos ===

	CreateTodo(ctx context.Context, todo model.Todo) (*model.Todo, error)
	UpdateTodo(ctx context.Context, id string, upd model.TodoUpdate) error
	DeleteTodo(ctx context.Context, id string) error
	DeleteTodos(ctx context.Context, ids []string) error
	SetAllTodosCompleted(ctx context.Context, completed bool) error
	GetTodos(ctx context.Context) ([]model.Todo, error)

	// === Projects ===

	CreateProject(ctx context.Context, project model.Project) (*model.Project, error)
	UpdateProject(ctx context.Context, id string, upd model.ProjectUpdate) error
	DeleteProject(ctx context.Context, id string) error
	GetProjectByID(ctx context.Context, id string) (*model.Project, error)
	GetProjects(ctx context.Context) ([]model.Project, error)

	// === Tasks ===

	CreateTask(ctx context.Context, task model.Task) (*model.Task, error)
	UpdateTask(ctx context.Context, id string, upd model.TaskUpdate) error
	DeleteTask(ctx context.Context, id string) error
	GetTasks(ctx context.Context) ([]model.Task, error)
	GetTasksByProject(ctx context.Context, projectID string) ([]model.Task, error)
	UpdateTaskStatuses(ctx context.Context, ids []string, status string) error

	Close() error
}
