package state

import (
	"context"
	"log"

	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/model"
	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/store"
)

// Settings mirrors the singleton settings record. An absent record means
// "use defaults"; nothing is written until the first update.
type Settings struct {
	store    store.Store
	settings model.Settings
}

// NewSettings creates a settings container with in-memory defaults.
func NewSettings(s store.Store) *Settings {
	return &Settings{store: s, settings: model.DefaultSettings()}
}

// Load reads the saved settings. Absence keeps the defaults; a read error
// is logged and the current in-memory values stay as they are.
func (s *Settings) Load(ctx context.Context) {
	saved, err := s.store.GetSettings(ctx)
	if err != nil {
		if !store.IsNotFound(err) {
			log.Printf("loading settings: %v", err)
		}
		return
	}
	s.settings = *saved
}

// Current returns a copy of the in-memory settings.
func (s *Settings) Current() model.Settings { return s.settings }

// PreferredModel returns the configured AI model identifier.
func (s *Settings) PreferredModel() string { return s.settings.PreferredModel }

// APIKey returns the OpenRouter credential.
func (s *Settings) APIKey() string { return s.settings.OpenRouterAPIKey }

// AutoSaveInterval returns the auto-save interval in milliseconds.
func (s *Settings) AutoSaveInterval() int { return s.settings.AutoSaveInterval }

// Update shallow-merges the given fields over the current settings, always
// re-asserting the fixed identifier, persists, and mirrors into memory.
func (s *Settings) Update(ctx context.Context, upd model.SettingsUpdate) error {
	merged := s.settings
	merged.ID = model.SettingsID
	if upd.PreferredModel != nil {
		merged.PreferredModel = *upd.PreferredModel
	}
	if upd.OpenRouterAPIKey != nil {
		merged.OpenRouterAPIKey = *upd.OpenRouterAPIKey
	}
	if upd.AutoSaveInterval != nil {
		merged.AutoSaveInterval = *upd.AutoSaveInterval
	}

	if err := s.store.PutSettings(ctx, merged); err != nil {
		log.Printf("updating settings: %v", err)
		return err
	}
	s.settings = merged
	return nil
}

// ResetToDefaults overwrites the saved settings unconditionally.
func (s *Settings) ResetToDefaults(ctx context.Context) error {
	defaults := model.DefaultSettings()
	if err := s.store.PutSettings(ctx, defaults); err != nil {
		log.Printf("resetting settings: %v", err)
		return err
	}
	s.settings = defaults
	return nil
}

// SetPreferredModel updates only the preferred model.
func (s *Settings) SetPreferredModel(ctx context.Context, modelID string) error {
	return s.Update(ctx, model.SettingsUpdate{PreferredModel: &modelID})
}

// SetAPIKey updates only the OpenRouter credential.
func (s *Settings) SetAPIKey(ctx context.Context, key string) error {
	return s.Update(ctx, model.SettingsUpdate{OpenRouterAPIKey: &key})
}

// SetAutoSaveInterval updates the auto-save interval. Non-positive values
// fall back to the default.
func (s *Settings) SetAutoSaveInterval(ctx context.Context, intervalMs int) error {
	if intervalMs <= 0 {
		intervalMs = model.DefaultAutoSaveInterval
	}
	return s.Update(ctx, model.SettingsUpdate{AutoSaveInterval: &intervalMs})
}
