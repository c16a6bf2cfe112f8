package driving

import "github.com/custodia-labs/sitesync/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get assembles and validates the current settings.
	Get() (*domain.Settings, error)

	// Set stores a single configuration key.
	Set(key, value string) error

	// Path returns the configuration file path.
	Path() string
}
