package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/model"
)

// noteColumns is the explicit column list for note queries. The tags and
// ai_summary/sort_weight columns were added in later schema versions, so
// SELECT * would scan them out of struct order on upgraded databases.
const noteColumns = "id, title, content, tags, created_at, updated_at, ai_summary, sort_weight"

// CreateNote inserts a new note and returns the stored record.
// Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateNote(ctx context.Context, note model.Note) (*model.Note, error) {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now
	if note.Tags == nil {
		note.Tags = []string{}
	}

	tagsJSON, err := json.Marshal(note.Tags)
	if err != nil {
		return nil, fmt.Errorf("marshaling tags for note %s: %w", note.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO notes (id, title, content, tags, created_at, updated_at, ai_summary, sort_weight)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		note.ID, note.Title, note.Content, string(tagsJSON),
		note.CreatedAt, note.UpdatedAt, note.AISummary, note.SortWeight,
	)
	if err != nil {
		return nil, fmt.Errorf("creating note: %w", err)
	}
	return &note, nil
}

// UpdateNote applies a partial update to a note and stamps updated_at.
// Returns ErrNotFound if the note does not exist.
func (s *SQLiteStore) UpdateNote(ctx context.Context, id string, upd model.NoteUpdate) error {
	if upd.IsEmpty() {
		return nil
	}

	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC()}

	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *upd.Content)
	}
	if upd.Tags != nil {
		tagsJSON, err := json.Marshal(*upd.Tags)
		if err != nil {
			return fmt.Errorf("marshaling tags for note %s: %w", id, err)
		}
		sets = append(sets, "tags = ?")
		args = append(args, string(tagsJSON))
	}
	if upd.AISummary != nil {
		sets = append(sets, "ai_summary = ?")
		args = append(args, *upd.AISummary)
	}
	if upd.SortWeight != nil {
		sets = append(sets, "sort_weight = ?")
		args = append(args, *upd.SortWeight)
	}

	args = append(args, id)
	result, err := s.db.ExecContext(ctx,
		"UPDATE notes SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("updating note %s: %w", id, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteNote removes a note by ID. Idempotent: deleting an absent note
// is not an error.
func (s *SQLiteStore) DeleteNote(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}
	return nil
}

// GetNoteByID retrieves a single note by ID.
func (s *SQLiteStore) GetNoteByID(ctx context.Context, id string) (*model.Note, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE id = ?", id)

	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("note %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting note %s: %w", id, err)
	}
	return &note, nil
}

// GetNotes retrieves all notes. Ordering is left to the state container.
func (s *SQLiteStore) GetNotes(ctx context.Context) ([]model.Note, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT "+noteColumns+" FROM notes")
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

// UpdateNoteWeights persists a full set of sort weights in one transaction
// so a reorder either lands for every note or none.
func (s *SQLiteStore) UpdateNoteWeights(ctx context.Context, weights []NoteWeight) error {
	if len(weights) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx,
		"UPDATE notes SET sort_weight = ?, updated_at = ? WHERE id = ?")
	if err != nil {
		return fmt.Errorf("preparing weight update: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, w := range weights {
		if _, err := stmt.ExecContext(ctx, w.Weight, now, w.ID); err != nil {
			return fmt.Errorf("updating weight for note %s: %w", w.ID, err)
		}
	}

	return tx.Commit()
}

// scanNote scans a note row from either sqlx.Rows or sqlx.Row.
func scanNote(row interface{ Scan(dest ...interface{}) error }) (model.Note, error) {
	var (
		note       model.Note
		tagsJSON   string
		sortWeight sql.NullFloat64
	)

	err := row.Scan(
		&note.ID, &note.Title, &note.Content, &tagsJSON,
		&note.CreatedAt, &note.UpdatedAt, &note.AISummary, &sortWeight,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Note{}, err
		}
		return model.Note{}, fmt.Errorf("scanning note row: %w", err)
	}

	if err := json.Unmarshal([]byte(tagsJSON), &note.Tags); err != nil {
		return model.Note{}, fmt.Errorf("unmarshaling tags for note %s: %w", note.ID, err)
	}
	if sortWeight.Valid {
		w := sortWeight.Float64
		note.SortWeight = &w
	}

	return note, nil
}

// stripTagFromNotes removes tagID from every note referencing it, stamping
// updated_at on the notes it touches. Runs inside the caller's transaction.
func stripTagFromNotes(ctx context.Context, tx *sqlx.Tx, tagID string) error {
	rows, err := tx.QueryxContext(ctx, "SELECT id, tags FROM notes")
	if err != nil {
		return fmt.Errorf("querying note tags: %w", err)
	}

	type noteTags struct {
		id   string
		tags []string
	}
	var touched []noteTags

	for rows.Next() {
		var id, tagsJSON string
		if err := rows.Scan(&id, &tagsJSON); err != nil {
			rows.Close()
			return fmt.Errorf("scanning note tags: %w", err)
		}
		var tags []string
		if err := json.Unmarshal([]byte(tagsJSON), &tags); err != nil {
			rows.Close()
			return fmt.Errorf("unmarshaling tags for note %s: %w", id, err)
		}

		kept := tags[:0]
		removed := false
		for _, t := range tags {
			if t == tagID {
				removed = true
				continue
			}
			kept = append(kept, t)
		}
		if removed {
			touched = append(touched, noteTags{id: id, tags: kept})
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	now := time.Now().UTC()
	for _, nt := range touched {
		tagsJSON, err := json.Marshal(nt.tags)
		if err != nil {
			return fmt.Errorf("marshaling tags for note %s: %w", nt.id, err)
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE notes SET tags = ?, updated_at = ? WHERE id = ?",
			string(tagsJSON), now, nt.id); err != nil {
			return fmt.Errorf("removing tag %s from note %s: %w", tagID, nt.id, err)
		}
	}

	return nil
}
