package notion

import (
	"net/http"
	"strings"

	drivenoauth "github.com/custodia-labs/sercha-integrations/internal/adapters/driven/oauth"
)

// Notion endpoints.
const (
	defaultAPIBaseURL = "https://api.notion.com"
	defaultAuthURL    = defaultAPIBaseURL + "/v1/oauth/authorize"
	//nolint:gosec // G101: Not credentials, OAuth endpoint URL
	defaultTokenURL = defaultAPIBaseURL + "/v1/oauth/token"

	searchPath = "/v1/search"
)

// DefaultVersion is the Notion-Version header sent with API requests.
const DefaultVersion = "2022-06-28"

// pageSize is the largest page the search API serves.
const pageSize = 100

// Config holds Notion client settings.
type Config struct {
	// APIBaseURL overrides https://api.notion.com.
	APIBaseURL string
	// Version overrides DefaultVersion.
	Version string
	// HTTPClient is used for the token exchange.
	HTTPClient *http.Client
}

func (c Config) apiBaseURL() string {
	if c.APIBaseURL == "" {
		return defaultAPIBaseURL
	}
	return strings.TrimRight(c.APIBaseURL, "/")
}

func (c Config) version() string {
	if c.Version == "" {
		return DefaultVersion
	}
	return c.Version
}

func (c Config) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return drivenoauth.NewHTTPClient(drivenoauth.DefaultTimeout)
	}
	return c.HTTPClient
}
