package services

import (
	"context"
	"net/url"
	"sync"

	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
	"github.com/custodia-labs/sercha-integrations/internal/core/ports/driven"
)

// mockOAuthHandler implements driven.OAuthHandler for testing.
type mockOAuthHandler struct {
	provider domain.ProviderType
	defaults domain.OAuthApp

	mu        sync.Mutex
	exchanges []string
	lastApp   domain.OAuthApp
	cred      *domain.Credential
	err       error
}

func newMockOAuthHandler(provider domain.ProviderType) *mockOAuthHandler {
	return &mockOAuthHandler{
		provider: provider,
		defaults: domain.OAuthApp{
			Provider: provider,
			AuthURL:  "https://provider.test/authorize",
			TokenURL: "https://provider.test/token",
			Scopes:   []string{"read"},
		},
		cred: &domain.Credential{AccessToken: "access-" + string(provider), TokenType: "bearer", ExpiresIn: 1800},
	}
}

func (h *mockOAuthHandler) Provider() domain.ProviderType { return h.provider }

func (h *mockOAuthHandler) AuthorizeStyle() domain.AuthorizeStyle { return domain.AuthorizeJSON }

func (h *mockOAuthHandler) BuildAuthURL(app domain.OAuthApp, state string) string {
	q := url.Values{"client_id": {app.ClientID}, "state": {state}}
	return app.AuthURL + "?" + q.Encode()
}

func (h *mockOAuthHandler) ExchangeCode(_ context.Context, app domain.OAuthApp, code string) (*domain.Credential, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.exchanges = append(h.exchanges, code)
	h.lastApp = app
	if h.err != nil {
		return nil, h.err
	}
	c := *h.cred
	return &c, nil
}

func (h *mockOAuthHandler) DefaultApp() domain.OAuthApp { return h.defaults }

func (h *mockOAuthHandler) SetupHint() string { return "register an app" }

func (h *mockOAuthHandler) exchangeCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.exchanges)
}

// mockConnector implements driven.Connector for testing.
type mockConnector struct {
	provider   domain.ProviderType
	records    []map[string]any
	err        error
	normaliser driven.ItemNormaliser
	gotCred    *domain.Credential
}

func (c *mockConnector) Provider() domain.ProviderType { return c.provider }

func (c *mockConnector) FetchAll(_ context.Context, cred *domain.Credential) ([]map[string]any, error) {
	c.gotCred = cred
	if c.err != nil {
		return nil, c.err
	}
	return c.records, nil
}

func (c *mockConnector) Normaliser(_ *domain.Credential) driven.ItemNormaliser {
	if c.normaliser != nil {
		return c.normaliser
	}
	return idNormaliser{}
}

// idNormaliser names each item after its "name" field and rejects
// records without an "id".
type idNormaliser struct{}

func (idNormaliser) Normalise(raw map[string]any) (*domain.Item, error) {
	id, _ := raw["id"].(string)
	if id == "" {
		return nil, &domain.MalformedRecordError{Reason: "no id"}
	}
	item := domain.NewItem(id, "thing")
	item.Name, _ = raw["name"].(string)
	return item, nil
}

// staticApps implements AppSource for testing.
type staticApps map[domain.ProviderType]domain.OAuthApp

func (a staticApps) ProviderApp(provider domain.ProviderType) (domain.OAuthApp, error) {
	app, ok := a[provider]
	if !ok {
		return domain.OAuthApp{}, domain.ErrProviderNotConfigured
	}
	return app, nil
}

func configuredApps(providers ...domain.ProviderType) staticApps {
	apps := staticApps{}
	for _, p := range providers {
		apps[p] = domain.OAuthApp{
			Provider:     p,
			ClientID:     "client-" + string(p),
			ClientSecret: "secret-" + string(p),
			RedirectURI:  "http://localhost:8000/integrations/" + string(p) + "/oauth2callback",
		}
	}
	return apps
}
