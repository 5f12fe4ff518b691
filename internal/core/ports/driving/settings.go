package driving

import "github.com/custodia-labs/hybra-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting by key, e.g. "data.dir".
	Set(key, value string) error

	// Keys returns the settable keys, sorted.
	Keys() []string

	// FieldMapping returns configured overrides for a source's field mapping.
	FieldMapping(source string) domain.FieldMapping

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
