package driving

import "github.com/custodia-labs/spsearch/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get resolves current settings, applying defaults for unset keys.
	Get() (domain.Settings, error)

	// Set stores a single setting by its dotted key.
	Set(key, value string) error

	// Keys returns every recognised setting key.
	Keys() []string

	// Validate checks if current settings are usable for a search.
	Validate() error
}
