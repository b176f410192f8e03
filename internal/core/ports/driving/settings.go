package driving

import "github.com/custodia-labs/sercha-integrations/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetProviderApp stores the OAuth app for a provider.
	SetProviderApp(app domain.OAuthApp) error

	// ProviderApp returns the configured OAuth app for a provider.
	ProviderApp(provider domain.ProviderType) (domain.OAuthApp, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
