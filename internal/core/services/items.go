package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
	"github.com/custodia-labs/sercha-integrations/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-integrations/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-integrations/internal/logger"
)

// Ensure ItemService implements the interface.
var _ driving.ItemService = (*ItemService)(nil)

// ItemService reads a scope's credential, fetches every provider record
// and normalises them into items.
type ItemService struct {
	store    driven.CredentialStore
	registry *ProviderRegistry
}

// NewItemService creates a new item service.
func NewItemService(store driven.CredentialStore, registry *ProviderRegistry) *ItemService {
	return &ItemService{
		store:    store,
		registry: registry,
	}
}

// ListItems returns every item visible to the scope's credential.
func (s *ItemService) ListItems(ctx context.Context, scope domain.Scope) ([]*domain.Item, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	connector, err := s.registry.Connector(scope.Provider)
	if err != nil {
		return nil, err
	}

	cred, err := loadCredential(ctx, s.store, scope)
	if err != nil {
		return nil, err
	}

	logger.Section(fmt.Sprintf("List %s items", scope.Provider.DisplayName()))
	records, err := connector.FetchAll(ctx, cred)
	if err != nil {
		return nil, fmt.Errorf("fetch %s items: %w", scope.Provider, err)
	}
	logger.Debug("items: fetched %d raw %s records", len(records), scope.Provider)

	normaliser := connector.Normaliser(cred)
	items := make([]*domain.Item, 0, len(records))
	for i, raw := range records {
		item, err := normaliser.Normalise(raw)
		if err != nil {
			var mre *domain.MalformedRecordError
			if errors.As(err, &mre) {
				mre.Index = i
				return nil, mre
			}
			return nil, fmt.Errorf("normalise record %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}
