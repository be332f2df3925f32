package model

import "time"

// Todo priority values. The set is open: unknown strings are stored as-is.
const (
	TodoPriorityNormal = "normal"
	TodoPriorityHigh   = "high"
)

// Todo is a single todo-list entry.
type Todo struct {
	ID        string    `json:"id" db:"id"`
	Content   string    `json:"content" db:"content"`
	Priority  string    `json:"priority" db:"priority"`
	Completed bool      `json:"completed" db:"completed"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
