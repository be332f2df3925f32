package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/model"
)

// CreateTag inserts a new tag and returns the stored record.
// Name uniqueness is the caller's responsibility (checked case-insensitively
// by the tag container before the write).
func (s *SQLiteStore) CreateTag(ctx context.Context, tag model.Tag) (*model.Tag, error) {
	if strings.TrimSpace(tag.Name) == "" {
		return nil, fmt.Errorf("tag name must not be empty")
	}
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	tag.Name = strings.TrimSpace(tag.Name)
	if tag.Color == "" {
		tag.Color = model.DefaultTagColor
	}
	tag.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tags (id, name, color, created_at) VALUES (?, ?, ?, ?)",
		tag.ID, tag.Name, tag.Color, tag.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating tag: %w", err)
	}
	return &tag, nil
}

// UpdateTag applies a partial update to a tag's name and color.
func (s *SQLiteStore) UpdateTag(ctx context.Context, id string, upd model.TagUpdate) error {
	if upd.Name == nil && upd.Color == nil {
		return nil
	}

	var sets []string
	var args []interface{}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return fmt.Errorf("tag name must not be empty")
		}
		sets = append(sets, "name = ?")
		args = append(args, name)
	}
	if upd.Color != nil {
		color := *upd.Color
		if color == "" {
			color = model.DefaultTagColor
		}
		sets = append(sets, "color = ?")
		args = append(args, color)
	}

	args = append(args, id)
	result, err := s.db.ExecContext(ctx,
		"UPDATE tags SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("updating tag %s: %w", id, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("tag %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteTag removes a tag and strips its id from every note's tag list.
// Both writes happen in a single transaction so a partial failure can
// neither orphan the tag nor leave notes half-stripped.
func (s *SQLiteStore) DeleteTag(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := stripTagFromNotes(ctx, tx, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM tags WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting tag %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("tag %s: %w", id, ErrNotFound)
	}

	return tx.Commit()
}

// GetTags retrieves all tags ordered by creation time.
func (s *SQLiteStore) GetTags(ctx context.Context) ([]model.Tag, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, name, color, created_at FROM tags ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning tag row: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
