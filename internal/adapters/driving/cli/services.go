package cli

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sercha-integrations/internal/adapters/driven/config/env"
	"github.com/custodia-labs/sercha-integrations/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-integrations/internal/adapters/driven/storage/memory"
	redisstore "github.com/custodia-labs/sercha-integrations/internal/adapters/driven/storage/redis"
	"github.com/custodia-labs/sercha-integrations/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sercha-integrations/internal/connectors"
	"github.com/custodia-labs/sercha-integrations/internal/connectors/hubspot"
	"github.com/custodia-labs/sercha-integrations/internal/connectors/notion"
	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
	"github.com/custodia-labs/sercha-integrations/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-integrations/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-integrations/internal/core/services"
	"github.com/custodia-labs/sercha-integrations/internal/logger"
)

// redisKeyPrefix namespaces every key written to a shared Redis.
const redisKeyPrefix = "sercha:"

// Services used by commands. They are built lazily on first use so that
// --config is honoured; tests assign fakes directly.
var (
	settingsService driving.SettingsService
	oauthService    driving.OAuthService
	itemService     driving.ItemService
	credentialStore driven.CredentialStore
	providerTypes   []domain.ProviderType
	configOverlay   *env.Overlay
	storeCloser     func() error
)

// initSettings opens the TOML config file and layers SERCHA_* environment
// variables over it.
func initSettings() error {
	if settingsService != nil {
		return nil
	}

	var (
		base *file.ConfigStore
		err  error
	)
	if configPath != "" {
		base, err = file.NewConfigStoreAt(configPath)
	} else {
		base, err = file.NewConfigStore("")
	}
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	vars, err := env.Parse()
	if err != nil {
		return err
	}
	configOverlay = env.NewOverlay(base, vars)
	settingsService = services.NewSettingsService(configOverlay)
	logger.Debug("config: %s", base.Path())
	return nil
}

// initServices builds the credential store, provider registry and the
// OAuth and item services from the current settings.
func initServices(ctx context.Context) error {
	if oauthService != nil && itemService != nil {
		return nil
	}
	if err := initSettings(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	store, closer, err := openStore(ctx, settings.Store)
	if err != nil {
		return err
	}
	credentialStore = store
	storeCloser = closer

	registry := newProviderRegistry(settings.Fetch)
	providerTypes = registry.Providers()
	oauthService = services.NewOAuthService(store, registry, settingsService)
	itemService = services.NewItemService(store, registry)
	return nil
}

// openStore opens the credential store selected by cfg.Driver.
func openStore(ctx context.Context, cfg domain.StoreSettings) (driven.CredentialStore, func() error, error) {
	switch cfg.Driver {
	case domain.StoreMemory, "":
		logger.Debug("credential store: memory")
		return memory.NewCredentialStore(), nil, nil

	case domain.StoreRedis:
		store, err := redisstore.New(ctx, redisstore.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   redisKeyPrefix,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("opening redis store: %w", err)
		}
		logger.Debug("credential store: redis %s db %d", cfg.RedisAddr, cfg.RedisDB)
		return store, store.Close, nil

	case domain.StoreSQLite:
		store, err := sqlite.NewStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		logger.Debug("credential store: sqlite %s", store.Path())
		return store, store.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown store driver %q", domain.ErrInvalidInput, cfg.Driver)
	}
}

// newProviderRegistry registers every supported provider with fetch
// limits taken from settings.
func newProviderRegistry(fetch domain.FetchSettings) *services.ProviderRegistry {
	opts := []connectors.FetcherOption{
		connectors.WithTimeout(fetch.Timeout),
		connectors.WithMaxPages(fetch.MaxPages),
	}

	registry := services.NewProviderRegistry()

	hubspotCfg := hubspot.Config{}
	registry.Register(hubspot.NewOAuthHandler(hubspotCfg), hubspot.NewConnector(hubspotCfg, opts...))

	notionCfg := notion.Config{}
	registry.Register(notion.NewOAuthHandler(notionCfg), notion.NewConnector(notionCfg, opts...))

	return registry
}

// setupHint returns the app registration guidance for provider, or "".
func setupHint(provider domain.ProviderType) string {
	handler, err := newProviderRegistry(domain.FetchSettings{}).Handler(provider)
	if err != nil {
		return ""
	}
	return handler.SetupHint()
}

// closeServices releases the credential store, if one was opened.
func closeServices() {
	if storeCloser == nil {
		return
	}
	if err := storeCloser(); err != nil {
		logger.Warn("closing credential store: %v", err)
	}
	storeCloser = nil
}
