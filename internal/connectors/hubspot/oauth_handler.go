package hubspot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"

	drivenoauth "github.com/custodia-labs/sercha-integrations/internal/adapters/driven/oauth"
	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
	"github.com/custodia-labs/sercha-integrations/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-integrations/internal/logger"
)

// Ensure OAuthHandler implements the interface.
var _ driven.OAuthHandler = (*OAuthHandler)(nil)

// HubIDKey is the credential field holding the authorised portal id.
const HubIDKey = "hub_id"

// OAuthHandler implements OAuth operations for HubSpot.
type OAuthHandler struct {
	cfg    Config
	client *http.Client
}

// NewOAuthHandler creates a new HubSpot OAuth handler.
func NewOAuthHandler(cfg Config) *OAuthHandler {
	return &OAuthHandler{cfg: cfg, client: cfg.httpClient()}
}

// Provider returns domain.ProviderHubSpot.
func (h *OAuthHandler) Provider() domain.ProviderType {
	return domain.ProviderHubSpot
}

// AuthorizeStyle returns domain.AuthorizeRedirect: HubSpot's authorize
// endpoint redirects the browser straight to the provider.
func (h *OAuthHandler) AuthorizeStyle() domain.AuthorizeStyle {
	return domain.AuthorizeRedirect
}

// BuildAuthURL constructs the HubSpot OAuth authorization URL.
func (h *OAuthHandler) BuildAuthURL(app domain.OAuthApp, state string) string {
	return oauthConfig(app).AuthCodeURL(state)
}

// ExchangeCode exchanges an authorization code for an access token and
// records the token's hub_id.
func (h *OAuthHandler) ExchangeCode(ctx context.Context, app domain.OAuthApp, code string) (*domain.Credential, error) {
	cfg := oauthConfig(app)
	cred, err := drivenoauth.ExchangeCode(ctx, h.client, drivenoauth.ExchangeRequest{
		TokenURL:     cfg.Endpoint.TokenURL,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Code:         code,
		RedirectURI:  cfg.RedirectURL,
		AuthStyle:    oauth2.AuthStyleInParams,
		Encoding:     drivenoauth.EncodingForm,
	})
	if err != nil {
		return nil, err
	}

	if cred.AccessToken != "" && cred.ExtraString(HubIDKey) == "" {
		hubID, err := h.lookupHubID(ctx, cred.AccessToken)
		if err != nil {
			logger.Warn("hubspot: token lookup failed, contact URLs will be omitted: %v", err)
		} else if hubID != "" {
			cred.SetExtra(HubIDKey, hubID)
		}
	}
	return cred, nil
}

// lookupHubID reads the portal id from the access token metadata endpoint.
func (h *OAuthHandler) lookupHubID(ctx context.Context, accessToken string) (string, error) {
	endpoint := h.cfg.apiBaseURL() + accessTokensPath + url.PathEscape(accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", domain.NewTransportError("token lookup", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &domain.ProviderError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var info struct {
		HubID json.Number `json:"hub_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("decode token info: %w", err)
	}
	return info.HubID.String(), nil
}

// DefaultApp returns default OAuth URLs and scopes for HubSpot.
func (h *OAuthHandler) DefaultApp() domain.OAuthApp {
	return domain.OAuthApp{
		Provider: domain.ProviderHubSpot,
		Scopes:   append([]string(nil), defaultScopes...),
		AuthURL:  defaultAuthURL,
		TokenURL: h.cfg.apiBaseURL() + "/oauth/v1/token",
	}
}

// SetupHint returns guidance for setting up a HubSpot app.
func (h *OAuthHandler) SetupHint() string {
	return "Create a public app at developers.hubspot.com and add the redirect URL under Auth"
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
	scopes := app.Scopes
	if len(scopes) == 0 {
		scopes = defaultScopes
	}
	return &oauth2.Config{
		ClientID:     app.ClientID,
		ClientSecret: app.ClientSecret,
		RedirectURL:  app.RedirectURI,
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   authURL,
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}
