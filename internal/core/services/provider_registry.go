package services

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
	"github.com/custodia-labs/sercha-integrations/internal/core/ports/driven"
)

// ProviderRegistry maps providers to their OAuth handler and connector.
type ProviderRegistry struct {
	handlers   map[domain.ProviderType]driven.OAuthHandler
	connectors map[domain.ProviderType]driven.Connector
}

// NewProviderRegistry creates an empty registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		handlers:   make(map[domain.ProviderType]driven.OAuthHandler),
		connectors: make(map[domain.ProviderType]driven.Connector),
	}
}

// Register adds a provider. Either argument may be nil.
func (r *ProviderRegistry) Register(handler driven.OAuthHandler, connector driven.Connector) {
	if handler != nil {
		r.handlers[handler.Provider()] = handler
	}
	if connector != nil {
		r.connectors[connector.Provider()] = connector
	}
}

// Handler returns the OAuth handler for a provider.
func (r *ProviderRegistry) Handler(provider domain.ProviderType) (driven.OAuthHandler, error) {
	h, ok := r.handlers[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, provider)
	}
	return h, nil
}

// Connector returns the item connector for a provider.
func (r *ProviderRegistry) Connector(provider domain.ProviderType) (driven.Connector, error) {
	c, ok := r.connectors[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, provider)
	}
	return c, nil
}

// Providers returns every provider with an OAuth handler, sorted.
func (r *ProviderRegistry) Providers() []domain.ProviderType {
	providers := make([]domain.ProviderType, 0, len(r.handlers))
	for p := range r.handlers {
		providers = append(providers, p)
	}
	sort.Slice(providers, func(i, j int) bool { return providers[i] < providers[j] })
	return providers
}
