package driven

import (
	"context"

	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
)

// OAuthHandler implements the provider-specific half of the OAuth2
// authorization code flow.
type OAuthHandler interface {
	// Provider returns the provider this handler serves.
	Provider() domain.ProviderType

	// AuthorizeStyle reports how the authorization URL is handed to the caller.
	AuthorizeStyle() domain.AuthorizeStyle

	// BuildAuthURL constructs the provider authorization URL carrying the
	// encoded state parameter.
	BuildAuthURL(app domain.OAuthApp, state string) string

	// ExchangeCode trades an authorization code for an access credential.
	// A non-2xx response yields *domain.ExchangeError with the body verbatim;
	// network failures yield *domain.TransportError.
	ExchangeCode(ctx context.Context, app domain.OAuthApp, code string) (*domain.Credential, error)

	// DefaultApp returns the provider endpoints and default scopes.
	DefaultApp() domain.OAuthApp

	// SetupHint returns guidance for registering an OAuth app.
	SetupHint() string
}
