package domain

import "fmt"

// OAuthApp holds the OAuth application credentials registered with a
// provider's developer console. One app serves every org and user.
type OAuthApp struct {
	Provider ProviderType `json:"provider"`
	// ClientID is the OAuth client ID from the developer console.
	ClientID string `json:"client_id"`
	// ClientSecret is the OAuth client secret from the developer console.
	ClientSecret string `json:"client_secret"`
	// Scopes are the OAuth scopes to request.
	Scopes []string `json:"scopes,omitempty"`
	// AuthURL overrides the provider's authorization endpoint.
	AuthURL string `json:"auth_url,omitempty"`
	// TokenURL overrides the provider's token endpoint.
	TokenURL string `json:"token_url,omitempty"`
	// RedirectURI is the callback registered with the provider.
	RedirectURI string `json:"redirect_uri"`
}

// Validate checks the fields required to run an authorization flow.
func (a *OAuthApp) Validate() error {
	switch {
	case a.ClientID == "":
		return fmt.Errorf("%w: %s client_id is not set", ErrProviderNotConfigured, a.Provider)
	case a.ClientSecret == "":
		return fmt.Errorf("%w: %s client_secret is not set", ErrProviderNotConfigured, a.Provider)
	case a.RedirectURI == "":
		return fmt.Errorf("%w: %s redirect_uri is not set", ErrProviderNotConfigured, a.Provider)
	}
	return nil
}

// Redacted returns a copy safe to print.
func (a OAuthApp) Redacted() OAuthApp {
	if a.ClientSecret != "" {
		a.ClientSecret = "********"
	}
	return a
}
