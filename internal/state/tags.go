package state

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/model"
	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/store"
)

// Tags mirrors the tag collection. Reload strategy. Name uniqueness is
// enforced here, case-insensitively, before any write reaches the store.
type Tags struct {
	store store.Store
	tags  []model.Tag
}

// NewTags creates a tag container backed by the given store.
func NewTags(s store.Store) *Tags {
	return &Tags{store: s}
}

// Load refetches all tags. On failure the previous cache is kept.
func (t *Tags) Load(ctx context.Context) {
	tags, err := t.store.GetTags(ctx)
	if err != nil {
		log.Printf("loading tags: %v", err)
		return
	}
	t.tags = tags
}

// All returns the in-memory tags.
func (t *Tags) All() []model.Tag { return t.tags }

// Exists reports whether a tag with the given name exists, ignoring case.
func (t *Tags) Exists(name string) bool {
	for _, tag := range t.tags {
		if strings.EqualFold(tag.Name, name) {
			return true
		}
	}
	return false
}

// Create adds a new tag after checking the name is not already taken.
func (t *Tags) Create(ctx context.Context, name, color string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if t.Exists(name) {
		return nil, fmt.Errorf("tag name %q already exists", name)
	}

	created, err := t.store.CreateTag(ctx, model.Tag{Name: name, Color: color})
	if err != nil {
		log.Printf("creating tag: %v", err)
		return nil, err
	}
	t.Load(ctx)
	return created, nil
}

// Update renames or recolors a tag, rejecting a name that collides with a
// different tag.
func (t *Tags) Update(ctx context.Context, id, name, color string) error {
	name = strings.TrimSpace(name)
	for _, tag := range t.tags {
		if tag.ID != id && strings.EqualFold(tag.Name, name) {
			return fmt.Errorf("tag name %q already exists", name)
		}
	}

	err := t.store.UpdateTag(ctx, id, model.TagUpdate{Name: &name, Color: &color})
	if err != nil {
		log.Printf("updating tag %s: %v", id, err)
		return err
	}
	t.Load(ctx)
	return nil
}

// Delete removes a tag; the store strips the id from every note in the same
// transaction. Callers holding a Notes container should reload it afterwards.
func (t *Tags) Delete(ctx context.Context, id string) error {
	if err := t.store.DeleteTag(ctx, id); err != nil {
		log.Printf("deleting tag %s: %v", id, err)
		return err
	}
	t.Load(ctx)
	return nil
}
