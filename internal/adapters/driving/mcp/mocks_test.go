package mcp

import (
	"context"

	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
	"github.com/custodia-labs/sercha-integrations/internal/core/ports/driving"
)

// mockItemService is a mock implementation of driving.ItemService.
type mockItemService struct {
	items    []*domain.Item
	err      error
	gotScope domain.Scope
}

func (m *mockItemService) ListItems(_ context.Context, scope domain.Scope) ([]*domain.Item, error) {
	m.gotScope = scope
	return m.items, m.err
}

// mockOAuthService is a mock implementation of driving.OAuthService.
type mockOAuthService struct {
	cred *domain.Credential
	err  error
}

func (m *mockOAuthService) Authorize(_ context.Context, _ domain.Scope) (*driving.AuthorizeResult, error) {
	return nil, m.err
}

func (m *mockOAuthService) Callback(
	_ context.Context, _ domain.ProviderType, _, _ string,
) (*driving.CallbackResult, error) {
	return nil, m.err
}

func (m *mockOAuthService) Credentials(_ context.Context, _ domain.Scope) (*domain.Credential, error) {
	return m.cred, m.err
}
