package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kongxiangyu0727-debug/Carmen-ai/internal/model"
)

// GetSettings retrieves the singleton settings record. Returns ErrNotFound
// when no record has been saved yet; callers treat absence as "use defaults".
func (s *SQLiteStore) GetSettings(ctx context.Context) (*model.Settings, error) {
	var settings model.Settings
	err := s.db.QueryRowxContext(ctx, `
		SELECT id, preferred_model, openrouter_api_key, auto_save_interval
		FROM settings WHERE id = ?`, model.SettingsID,
	).Scan(
		&settings.ID, &settings.PreferredModel,
		&settings.OpenRouterAPIKey, &settings.AutoSaveInterval,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("settings: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("getting settings: %w", err)
	}
	return &settings, nil
}

// PutSettings writes the singleton settings record, inserting or replacing
// as needed. The fixed identifier is always re-asserted so repeated writes
// can never produce a second row.
func (s *SQLiteStore) PutSettings(ctx context.Context, settings model.Settings) error {
	settings.ID = model.SettingsID

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO settings (id, preferred_model, openrouter_api_key, auto_save_interval)
		VALUES (?, ?, ?, ?)`,
		settings.ID, settings.PreferredModel,
		settings.OpenRouterAPIKey, settings.AutoSaveInterval,
	)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}
