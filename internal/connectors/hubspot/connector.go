package hubspot

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/custodia-labs/sercha-integrations/internal/connectors"
	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
	"github.com/custodia-labs/sercha-integrations/internal/core/ports/driven"
	normaliser "github.com/custodia-labs/sercha-integrations/internal/normalisers/hubspot"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector lists HubSpot CRM contacts.
type Connector struct {
	fetcher  *connectors.Fetcher
	endpoint connectors.Endpoint
}

// NewConnector creates a contacts connector. Options are applied after the
// HubSpot rate limiter, so callers may replace it.
func NewConnector(cfg Config, opts ...connectors.FetcherOption) *Connector {
	all := append([]connectors.FetcherOption{
		connectors.WithRateLimiter(connectors.NewRateLimiter(domain.ProviderHubSpot)),
	}, opts...)

	return &Connector{
		fetcher:  connectors.NewFetcher(all...),
		endpoint: contactsEndpoint(cfg.apiBaseURL()),
	}
}

func contactsEndpoint(base string) connectors.Endpoint {
	return connectors.Endpoint{
		URL:            base + contactsPath,
		Method:         http.MethodGet,
		Query:          url.Values{"properties": contactProperties},
		CursorParam:    "after",
		PageSizeParam:  "limit",
		PageSize:       pageSize,
		ResultsPath:    "results",
		NextCursorPath: "paging.next.after",
	}
}

// Provider returns domain.ProviderHubSpot.
func (c *Connector) Provider() domain.ProviderType {
	return domain.ProviderHubSpot
}

// FetchAll returns every contact visible to the credential.
func (c *Connector) FetchAll(ctx context.Context, cred *domain.Credential) ([]map[string]any, error) {
	if cred == nil || cred.AccessToken == "" {
		return nil, fmt.Errorf("%w: hubspot credential has no access token", domain.ErrInvalidInput)
	}
	return c.fetcher.FetchAll(ctx, cred.AccessToken, c.endpoint)
}

// Normaliser returns a contact normaliser bound to the credential's portal.
func (c *Connector) Normaliser(cred *domain.Credential) driven.ItemNormaliser {
	var hubID string
	if cred != nil {
		hubID = cred.ExtraString(HubIDKey)
	}
	return normaliser.New(hubID)
}
