package driving

import "github.com/custodia-labs/ingest-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetEndpoint updates the ingestion API location.
	SetEndpoint(endpoint domain.EndpointSettings) error

	// SetAuth updates the ingestion API credentials.
	SetAuth(auth domain.AuthSettings) error

	// Validate checks the current settings are usable for uploads.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
