package notion

import (
	"context"
	"fmt"
	"net/http"

	"github.com/custodia-labs/sercha-integrations/internal/connectors"
	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
	"github.com/custodia-labs/sercha-integrations/internal/core/ports/driven"
	normaliser "github.com/custodia-labs/sercha-integrations/internal/normalisers/notion"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector lists the pages shared with a Notion integration.
type Connector struct {
	fetcher  *connectors.Fetcher
	endpoint connectors.Endpoint
}

// NewConnector creates a search connector. Options are applied after the
// Notion rate limiter, so callers may replace it.
func NewConnector(cfg Config, opts ...connectors.FetcherOption) *Connector {
	all := append([]connectors.FetcherOption{
		connectors.WithRateLimiter(connectors.NewRateLimiter(domain.ProviderNotion)),
	}, opts...)

	return &Connector{
		fetcher:  connectors.NewFetcher(all...),
		endpoint: searchEndpoint(cfg.apiBaseURL(), cfg.version()),
	}
}

func searchEndpoint(base, version string) connectors.Endpoint {
	return connectors.Endpoint{
		URL:    base + searchPath,
		Method: http.MethodPost,
		Body: map[string]any{
			"filter": map[string]any{"value": "page", "property": "object"},
		},
		Headers:        map[string]string{"Notion-Version": version},
		CursorParam:    "start_cursor",
		PageSizeParam:  "page_size",
		PageSize:       pageSize,
		ResultsPath:    "results",
		HasMorePath:    "has_more",
		NextCursorPath: "next_cursor",
	}
}

// Provider returns domain.ProviderNotion.
func (c *Connector) Provider() domain.ProviderType {
	return domain.ProviderNotion
}

// FetchAll returns every page visible to the credential.
func (c *Connector) FetchAll(ctx context.Context, cred *domain.Credential) ([]map[string]any, error) {
	if cred == nil || cred.AccessToken == "" {
		return nil, fmt.Errorf("%w: notion credential has no access token", domain.ErrInvalidInput)
	}
	return c.fetcher.FetchAll(ctx, cred.AccessToken, c.endpoint)
}

// Normaliser returns the Notion object normaliser.
func (c *Connector) Normaliser(_ *domain.Credential) driven.ItemNormaliser {
	return normaliser.New()
}
