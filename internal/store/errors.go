package store

import "errors"

// ErrNotFound is returned when an update or lookup targets a record that
// does not exist in its collection. Deletes of notes, todos, and settings
// are idempotent and never return it.
var ErrNotFound = errors.New("record not found")

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
