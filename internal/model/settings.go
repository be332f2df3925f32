package model

// SettingsID is the fixed identifier of the singleton settings record.
const SettingsID = "user_settings"

// Default settings values applied when no record exists.
const (
	DefaultPreferredModel   = "anthropic/claude-3-sonnet"
	DefaultAutoSaveInterval = 2000 // milliseconds
)

// Settings is the singleton application settings record. At most one row
// with ID == SettingsID ever exists.
type Settings struct {
	ID               string `json:"id" db:"id"`
	PreferredModel   string `json:"preferred_model" db:"preferred_model"`
	OpenRouterAPIKey string `json:"openrouter_api_key" db:"openrouter_api_key"`
	AutoSaveInterval int    `json:"auto_save_interval" db:"auto_save_interval"`
}

// DefaultSettings returns the settings used when no record has been saved.
func DefaultSettings() Settings {
	return Settings{
		ID:               SettingsID,
		PreferredModel:   DefaultPreferredModel,
		OpenRouterAPIKey: "",
		AutoSaveInterval: DefaultAutoSaveInterval,
	}
}
