// Package app wires the store, state containers, and AI client together
// for an embedding UI. Containers are loaded independently during Init so
// one failed collection never blocks the rest.
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/ai"
	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/autosave"
	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/credential"
	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/model"
	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/state"
	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/store"
)

// App owns the store connection and the five state containers.
type App struct {
	Config *model.AppConfig
	Store  *store.SQLiteStore

	Notes    *state.Notes
	Tags     *state.Tags
	Settings *state.Settings
	Todos    *state.Todos
	Projects *state.Projects

	AI *ai.Client

	saver *autosave.Scheduler
}

// New opens the database and constructs the containers. The store is the
// only component whose failure aborts startup.
func New(cfg *model.AppConfig) (*App, error) {
	s, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	settings := state.NewSettings(s)

	return &App{
		Config:   cfg,
		Store:    s,
		Notes:    state.NewNotes(s),
		Tags:     state.NewTags(s),
		Settings: settings,
		Todos:    state.NewTodos(s),
		Projects: state.NewProjects(s),
		AI:       ai.New(settings, cfg.AI.BaseURL),
	}, nil
}

// Init loads every collection, applies a keyring credential when the
// stored key is empty, and seeds sample data on first run.
func (a *App) Init(ctx context.Context) {
	a.Settings.Load(ctx)
	a.Notes.Load(ctx)
	a.Tags.Load(ctx)
	a.Todos.Load(ctx)
	a.Projects.Load(ctx)

	a.applyKeyringCredential(ctx)

	if a.Config.Seed.Enabled {
		a.seedSampleData(ctx)
	}
}

// applyKeyringCredential copies the OpenRouter key from the system keyring
// into the settings record when no key has been saved there yet.
func (a *App) applyKeyringCredential(ctx context.Context) {
	if a.Settings.APIKey() != "" {
		return
	}

	key, err := credential.Get(credential.OpenRouterAPIKey)
	if err != nil || key == "" {
		return
	}
	if err := a.Settings.SetAPIKey(ctx, key); err != nil {
		log.Printf("applying keyring credential: %v", err)
	}
}

// StartAutoSave begins periodic saves of the current note at the interval
// from the settings record. Restarting picks up an interval change.
func (a *App) StartAutoSave() {
	if a.saver != nil {
		a.saver.Stop()
	}
	a.saver = autosave.New(a.Notes.SaveCurrent, a.Settings.AutoSaveInterval())
	a.saver.Start()
}

// StopAutoSave halts the periodic save loop.
func (a *App) StopAutoSave() {
	if a.saver != nil {
		a.saver.Stop()
	}
}

// DeleteTag removes a tag and refreshes the notes container, whose cached
// notes may have referenced it.
func (a *App) DeleteTag(ctx context.Context, id string) error {
	if err := a.Tags.Delete(ctx, id); err != nil {
		return err
	}
	a.Notes.Load(ctx)
	return nil
}

// Close stops background work and releases the store connection.
func (a *App) Close() error {
	a.StopAutoSave()
	return a.Store.Close()
}
