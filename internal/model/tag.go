package model

import "time"

// DefaultTagColor is used when a tag is created without an explicit color.
const DefaultTagColor = "#409eff"

// Tag is a cross-cutting label for categorizing notes.
type Tag struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color" db:"color"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
