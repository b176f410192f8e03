package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
	"github.com/custodia-labs/sercha-integrations/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-integrations/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyServerAddr      = "server.addr"
	keyFrontendOrigin  = "server.frontend_origin"
	keyRateLimitRPS    = "server.rate_limit_rps"
	keyRateLimitBurst  = "server.rate_limit_burst"
	keyStoreDriver     = "store.driver"
	keyRedisAddr       = "store.redis_addr"
	keyRedisPassword   = "store.redis_password"
	keyRedisDB         = "store.redis_db"
	keySQLitePath      = "store.sqlite_path"
	keyFetchTimeout    = "fetch.timeout_seconds"
	keyFetchMaxPages   = "fetch.max_pages"
	providerKeyPrefix  = "providers."
	keyAppClientID     = "client_id"
	keyAppClientSecret = "client_secret"
	keyAppRedirectURI  = "redirect_uri"
	keyAppScopes       = "scopes"
	keyAppAuthURL      = "auth_url"
	keyAppTokenURL     = "token_url"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Server: domain.ServerSettings{
			Addr:           s.getString(keyServerAddr, defaults.Server.Addr),
			FrontendOrigin: s.configStore.GetString(keyFrontendOrigin),
			RateLimitRPS:   s.getFloat(keyRateLimitRPS, defaults.Server.RateLimitRPS),
			RateLimitBurst: s.getInt(keyRateLimitBurst, defaults.Server.RateLimitBurst),
		},
		Store: domain.StoreSettings{
			Driver:        s.getStoreDriver(defaults.Store.Driver),
			RedisAddr:     s.getString(keyRedisAddr, defaults.Store.RedisAddr),
			RedisPassword: s.configStore.GetString(keyRedisPassword),
			RedisDB:       s.configStore.GetInt(keyRedisDB),
			SQLitePath:    s.configStore.GetString(keySQLitePath),
		},
		Fetch: domain.FetchSettings{
			Timeout:  s.getSeconds(keyFetchTimeout, defaults.Fetch.Timeout),
			MaxPages: s.getInt(keyFetchMaxPages, defaults.Fetch.MaxPages),
		},
		Apps: make(map[domain.ProviderType]domain.OAuthApp),
	}

	for _, p := range domain.AllProviderTypes() {
		app := s.readApp(p)
		if app.ClientID != "" || app.ClientSecret != "" || app.RedirectURI != "" {
			settings.Apps[p] = app
		}
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyServerAddr, settings.Server.Addr},
		{keyFrontendOrigin, settings.Server.FrontendOrigin},
		{keyRateLimitRPS, settings.Server.RateLimitRPS},
		{keyRateLimitBurst, settings.Server.RateLimitBurst},
		{keyStoreDriver, settings.Store.Driver.String()},
		{keyRedisAddr, settings.Store.RedisAddr},
		{keyRedisDB, settings.Store.RedisDB},
		{keySQLitePath, settings.Store.SQLitePath},
		{keyFetchTimeout, int(settings.Fetch.Timeout / time.Second)},
		{keyFetchMaxPages, settings.Fetch.MaxPages},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	if settings.Store.RedisPassword != "" {
		if err := s.configStore.Set(keyRedisPassword, settings.Store.RedisPassword); err != nil {
			return fmt.Errorf("save %s: %w", keyRedisPassword, err)
		}
	}

	for _, app := range settings.Apps {
		if err := s.writeApp(app); err != nil {
			return err
		}
	}

	return s.configStore.Save()
}

// SetProviderApp stores the OAuth app for a provider.
func (s *SettingsService) SetProviderApp(app domain.OAuthApp) error {
	if !app.Provider.IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, app.Provider)
	}
	if app.ClientID == "" {
		return fmt.Errorf("%w: client_id is required", domain.ErrInvalidInput)
	}
	if err := s.writeApp(app); err != nil {
		return err
	}
	return s.configStore.Save()
}

// ProviderApp returns the configured OAuth app for a provider.
func (s *SettingsService) ProviderApp(provider domain.ProviderType) (domain.OAuthApp, error) {
	if !provider.IsValid() {
		return domain.OAuthApp{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, provider)
	}
	app := s.readApp(provider)
	if app.ClientID == "" {
		return app, fmt.Errorf("%w: %s", domain.ErrProviderNotConfigured, provider)
	}
	return app, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) readApp(provider domain.ProviderType) domain.OAuthApp {
	prefix := providerKeyPrefix + string(provider) + "."
	return domain.OAuthApp{
		Provider:     provider,
		ClientID:     s.configStore.GetString(prefix + keyAppClientID),
		ClientSecret: s.configStore.GetString(prefix + keyAppClientSecret),
		RedirectURI:  s.configStore.GetString(prefix + keyAppRedirectURI),
		Scopes:       s.configStore.GetStringSlice(prefix + keyAppScopes),
		AuthURL:      s.configStore.GetString(prefix + keyAppAuthURL),
		TokenURL:     s.configStore.GetString(prefix + keyAppTokenURL),
	}
}

func (s *SettingsService) writeApp(app domain.OAuthApp) error {
	prefix := providerKeyPrefix + string(app.Provider) + "."
	values := map[string]any{
		keyAppClientID:    app.ClientID,
		keyAppRedirectURI: app.RedirectURI,
	}
	if app.ClientSecret != "" {
		values[keyAppClientSecret] = app.ClientSecret
	}
	if len(app.Scopes) > 0 {
		values[keyAppScopes] = app.Scopes
	}
	if app.AuthURL != "" {
		values[keyAppAuthURL] = app.AuthURL
	}
	if app.TokenURL != "" {
		values[keyAppTokenURL] = app.TokenURL
	}
	for k, v := range values {
		if err := s.configStore.Set(prefix+k, v); err != nil {
			return fmt.Errorf("save %s%s: %w", prefix, k, err)
		}
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Second
}

func (s *SettingsService) getStoreDriver(defaultVal domain.StoreDriver) domain.StoreDriver {
	driver := domain.StoreDriver(s.configStore.GetString(keyStoreDriver))
	if !driver.IsValid() {
		return defaultVal
	}
	return driver
}
