package driving

import "github.com/custodia-labs/drawwatch/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Set stores a single setting by key.
	Set(key string, value any) error

	// Validate checks that the current settings are usable.
	Validate() error
}
