package driving

import (
	"context"

	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
)

// AuthorizeResult is returned when a CSRF state has been issued.
type AuthorizeResult struct {
	// URL is the provider authorization URL carrying the encoded state.
	URL string
	// Style tells the transport whether to redirect or return JSON.
	Style domain.AuthorizeStyle
}

// CallbackResult identifies the scope whose credential was stored.
type CallbackResult struct {
	Scope domain.Scope
}

// OAuthService drives the authorize -> callback -> exchange -> store flow.
type OAuthService interface {
	// Authorize issues and stores a CSRF state for scope and returns the
	// provider authorization URL.
	Authorize(ctx context.Context, scope domain.Scope) (*AuthorizeResult, error)

	// Callback validates and consumes the state, exchanges code for a
	// credential and stores it. Returns domain.ErrInvalidState when the
	// state is unknown, expired, mismatched or already consumed.
	Callback(ctx context.Context, provider domain.ProviderType, code, state string) (*CallbackResult, error)

	// Credentials returns the cached credential for scope, or
	// domain.ErrCredentialNotFound.
	Credentials(ctx context.Context, scope domain.Scope) (*domain.Credential, error)
}
