package driving

import "github.com/custodia-labs/stencil-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, with defaults for unset keys.
	Get() (*domain.Settings, error)

	// Save persists settings.
	Save(settings *domain.Settings) error

	// Set stores a single setting by key.
	Set(key, value string) error

	// Keys returns the recognised setting keys.
	Keys() []string
}
