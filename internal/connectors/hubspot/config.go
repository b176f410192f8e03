package hubspot

import (
	"net/http"
	"strings"

	drivenoauth "github.com/custodia-labs/sercha-integrations/internal/adapters/driven/oauth"
)

// HubSpot endpoints.
const (
	defaultAPIBaseURL = "https://api.hubapi.com"
	defaultAuthURL    = "https://app.hubspot.com/oauth/authorize"
	//nolint:gosec // G101: Not credentials, OAuth endpoint URL
	defaultTokenURL = defaultAPIBaseURL + "/oauth/v1/token"

	contactsPath     = "/crm/v3/objects/contacts"
	accessTokensPath = "/oauth/v1/access-tokens/"
)

// defaultScopes are the default OAuth scopes for HubSpot.
var defaultScopes = []string{"oauth", "crm.objects.contacts.read"}

// contactProperties are requested for every contact.
var contactProperties = []string{
	"firstname",
	"lastname",
	"email",
	"company",
	"phone",
	"associatedcompanyid",
	"createdate",
	"lastmodifieddate",
	"hs_object_id",
}

// pageSize is the largest page the contacts API serves.
const pageSize = 100

// Config holds HubSpot client settings.
type Config struct {
	// APIBaseURL overrides https://api.hubapi.com.
	APIBaseURL string
	// HTTPClient is used for the token exchange and token lookup.
	HTTPClient *http.Client
}

func (c Config) apiBaseURL() string {
	if c.APIBaseURL == "" {
		return defaultAPIBaseURL
	}
	return strings.TrimRight(c.APIBaseURL, "/")
}

func (c Config) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return drivenoauth.NewHTTPClient(drivenoauth.DefaultTimeout)
	}
	return c.HTTPClient
}
