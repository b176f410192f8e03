package notion

import (
	"context"

	"golang.org/x/oauth2"

	drivenoauth "github.com/custodia-labs/sercha-integrations/internal/adapters/driven/oauth"
	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
	"github.com/custodia-labs/sercha-integrations/internal/core/ports/driven"
)

// Ensure OAuthHandler implements the interface.
var _ driven.OAuthHandler = (*OAuthHandler)(nil)

// OAuthHandler implements OAuth operations for Notion.
type OAuthHandler struct {
	cfg Config
}

// NewOAuthHandler creates a new Notion OAuth handler.
func NewOAuthHandler(cfg Config) *OAuthHandler {
	return &OAuthHandler{cfg: cfg}
}

// Provider returns domain.ProviderNotion.
func (h *OAuthHandler) Provider() domain.ProviderType {
	return domain.ProviderNotion
}

// AuthorizeStyle returns domain.AuthorizeJSON: the frontend opens the URL
// in a popup itself.
func (h *OAuthHandler) AuthorizeStyle() domain.AuthorizeStyle {
	return domain.AuthorizeJSON
}

// BuildAuthURL constructs the Notion OAuth authorization URL.
// Notion has no scopes; access is chosen by the user on the consent page.
func (h *OAuthHandler) BuildAuthURL(app domain.OAuthApp, state string) string {
	return oauthConfig(app).AuthCodeURL(state, oauth2.SetAuthURLParam("owner", "user"))
}

// ExchangeCode exchanges an authorization code for an access token.
// The response's workspace and bot fields are kept on the credential.
func (h *OAuthHandler) ExchangeCode(ctx context.Context, app domain.OAuthApp, code string) (*domain.Credential, error) {
	cfg := oauthConfig(app)
	return drivenoauth.ExchangeCode(ctx, h.cfg.httpClient(), drivenoauth.ExchangeRequest{
		TokenURL:     cfg.Endpoint.TokenURL,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Code:         code,
		RedirectURI:  cfg.RedirectURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
		Encoding:     drivenoauth.EncodingJSON,
	})
}

// DefaultApp returns default OAuth URLs for Notion.
func (h *OAuthHandler) DefaultApp() domain.OAuthApp {
	return domain.OAuthApp{
		Provider: domain.ProviderNotion,
		AuthURL:  defaultAuthURL,
		TokenURL: h.cfg.apiBaseURL() + "/v1/oauth/token",
	}
}

// SetupHint returns guidance for setting up a Notion integration.
func (h *OAuthHandler) SetupHint() string {
	return "Create a public integration at notion.so/my-integrations and set its redirect URI"
}

func oauthConfig(app domain.OAuthApp) *oauth2.Config {
	authURL := app.AuthURL
	if authURL == "" {
		authURL = defaultAuthURL
	}
	tokenURL := app.TokenURL
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}
	return &oauth2.Config{
		ClientID:     app.ClientID,
		ClientSecret: app.ClientSecret,
		RedirectURL:  app.RedirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:   authURL,
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}
