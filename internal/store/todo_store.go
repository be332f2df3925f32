package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/model"
)

// todoColumns lists columns explicitly because priority was appended to the
// table in a later schema version.
const todoColumns = "id, content, priority, completed, created_at, updated_at"

// CreateTodo inserts a new todo and returns the stored record.
// Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateTodo(ctx context.Context, todo model.Todo) (*model.Todo, error) {
	if strings.TrimSpace(todo.Content) == "" {
		return nil, fmt.Errorf("todo content must not be empty")
	}
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	if todo.Priority == "" {
		todo.Priority = model.TodoPriorityNormal
	}
	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO todos (id, content, priority, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		todo.ID, todo.Content, todo.Priority, boolToInt(todo.Completed),
		todo.CreatedAt, todo.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}
	return &todo, nil
}

// UpdateTodo applies a partial update to a todo and stamps updated_at.
func (s *SQLiteStore) UpdateTodo(ctx context.Context, id string, upd model.TodoUpdate) error {
	if upd.Content == nil && upd.Priority == nil && upd.Completed == nil {
		return nil
	}

	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC()}

	if upd.Content != nil {
		if strings.TrimSpace(*upd.Content) == "" {
			return fmt.Errorf("todo content must not be empty")
		}
		sets = append(sets, "content = ?")
		args = append(args, *upd.Content)
	}
	if upd.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *upd.Priority)
	}
	if upd.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, boolToInt(*upd.Completed))
	}

	args = append(args, id)
	result, err := s.db.ExecContext(ctx,
		"UPDATE todos SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("updating todo %s: %w", id, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("todo %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteTodo removes a todo by ID. Idempotent.
func (s *SQLiteStore) DeleteTodo(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting todo %s: %w", id, err)
	}
	return nil
}

// DeleteTodos removes a batch of todos in one transaction.
func (s *SQLiteStore) DeleteTodos(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id); err != nil {
			return fmt.Errorf("deleting todo %s: %w", id, err)
		}
	}

	return tx.Commit()
}

// SetAllTodosCompleted sets the completed flag on every todo and stamps
// updated_at. A no-op when the collection is empty.
func (s *SQLiteStore) SetAllTodosCompleted(ctx context.Context, completed bool) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE todos SET completed = ?, updated_at = ?",
		boolToInt(completed), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("updating all todos: %w", err)
	}
	return nil
}

// GetTodos retrieves all todos ordered by creation time.
func (s *SQLiteStore) GetTodos(ctx context.Context) ([]model.Todo, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT "+todoColumns+" FROM todos ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		var (
			todo         model.Todo
			completedInt int
		)
		err := rows.Scan(
			&todo.ID, &todo.Content, &todo.Priority, &completedInt,
			&todo.CreatedAt, &todo.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning todo row: %w", err)
		}
		todo.Completed = completedInt != 0
		todos = append(todos, todo)
	}
	return todos, rows.Err()
}
