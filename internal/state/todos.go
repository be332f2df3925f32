package state

import (
	"context"
	"log"
	"time"

	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/model"
	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/store"
)

// Todos mirrors the todo collection. Patch strategy: mutations edit the
// in-memory copy directly and roll back on store failure; ToggleAll is the
// one operation that falls back to a full reload instead.
type Todos struct {
	store store.Store
	todos []model.Todo
}

// NewTodos creates a todo container backed by the given store.
func NewTodos(s store.Store) *Todos {
	return &Todos{store: s}
}

// Load refetches all todos ordered by creation time. On failure the
// previous cache is kept.
func (t *Todos) Load(ctx context.Context) {
	todos, err := t.store.GetTodos(ctx)
	if err != nil {
		log.Printf("loading todos: %v", err)
		return
	}
	t.todos = todos
}

// All returns the in-memory todos.
func (t *Todos) All() []model.Todo { return t.todos }

// Completed returns the completed todos.
func (t *Todos) Completed() []model.Todo {
	var out []model.Todo
	for _, todo := range t.todos {
		if todo.Completed {
			out = append(out, todo)
		}
	}
	return out
}

// Pending returns the not-yet-completed todos.
func (t *Todos) Pending() []model.Todo {
	var out []model.Todo
	for _, todo := range t.todos {
		if !todo.Completed {
			out = append(out, todo)
		}
	}
	return out
}

// Count returns the number of todos.
func (t *Todos) Count() int { return len(t.todos) }

// Add creates a new todo and appends the stored record to the cache.
func (t *Todos) Add(ctx context.Context, content, priority string) (*model.Todo, error) {
	created, err := t.store.CreateTodo(ctx, model.Todo{
		Content:  content,
		Priority: priority,
	})
	if err != nil {
		log.Printf("adding todo: %v", err)
		return nil, err
	}
	t.todos = append(t.todos, *created)
	return created, nil
}

// Toggle flips a todo's completed flag in memory, persists, and reverts
// the in-memory change if the write fails.
func (t *Todos) Toggle(ctx context.Context, id string) error {
	todo := t.find(id)
	if todo == nil {
		return nil
	}

	prev := *todo
	todo.Completed = !todo.Completed
	todo.UpdatedAt = time.Now().UTC()

	err := t.store.UpdateTodo(ctx, id, model.TodoUpdate{Completed: &todo.Completed})
	if err != nil {
		log.Printf("toggling todo %s: %v", id, err)
		*todo = prev
		return err
	}
	return nil
}

// UpdateContent changes a todo's content with rollback on failure.
func (t *Todos) UpdateContent(ctx context.Context, id, content string) error {
	todo := t.find(id)
	if todo == nil {
		return nil
	}

	prev := *todo
	todo.Content = content
	todo.UpdatedAt = time.Now().UTC()

	if err := t.store.UpdateTodo(ctx, id, model.TodoUpdate{Content: &content}); err != nil {
		log.Printf("updating todo %s: %v", id, err)
		*todo = prev
		return err
	}
	return nil
}

// UpdatePriority changes a todo's priority with rollback on failure.
func (t *Todos) UpdatePriority(ctx context.Context, id, priority string) error {
	todo := t.find(id)
	if todo == nil {
		return nil
	}

	prev := *todo
	todo.Priority = priority
	todo.UpdatedAt = time.Now().UTC()

	if err := t.store.UpdateTodo(ctx, id, model.TodoUpdate{Priority: &priority}); err != nil {
		log.Printf("updating todo %s priority: %v", id, err)
		*todo = prev
		return err
	}
	return nil
}

// Delete removes a todo from the store, then from the cache.
func (t *Todos) Delete(ctx context.Context, id string) error {
	if err := t.store.DeleteTodo(ctx, id); err != nil {
		log.Printf("deleting todo %s: %v", id, err)
		return err
	}

	kept := t.todos[:0]
	for _, todo := range t.todos {
		if todo.ID != id {
			kept = append(kept, todo)
		}
	}
	t.todos = kept
	return nil
}

// ClearCompleted removes every completed todo in one batch.
func (t *Todos) ClearCompleted(ctx context.Context) error {
	var ids []string
	for _, todo := range t.todos {
		if todo.Completed {
			ids = append(ids, todo.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	if err := t.store.DeleteTodos(ctx, ids); err != nil {
		log.Printf("clearing completed todos: %v", err)
		return err
	}

	kept := t.todos[:0]
	for _, todo := range t.todos {
		if !todo.Completed {
			kept = append(kept, todo)
		}
	}
	t.todos = kept
	return nil
}

// ToggleAll sets every todo's completed flag in memory first, then bulk
// persists. On failure it reloads the full collection from storage to
// guarantee consistency. A no-op on an empty list.
func (t *Todos) ToggleAll(ctx context.Context, completed bool) error {
	if len(t.todos) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for i := range t.todos {
		t.todos[i].Completed = completed
		t.todos[i].UpdatedAt = now
	}

	if err := t.store.SetAllTodosCompleted(ctx, completed); err != nil {
		log.Printf("toggling all todos: %v", err)
		t.Load(ctx)
		return err
	}
	return nil
}

func (t *Todos) find(id string) *model.Todo {
	for i := range t.todos {
		if t.todos[i].ID == id {
			return &t.todos[i]
		}
	}
	return nil
}
