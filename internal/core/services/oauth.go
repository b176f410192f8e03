package services

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
	"github.com/custodia-labs/sercha-integrations/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-integrations/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-integrations/internal/logger"
)

// Ensure OAuthService implements the interface.
var _ driving.OAuthService = (*OAuthService)(nil)

// StateTTL bounds how long an issued CSRF state stays valid.
const StateTTL = 600 * time.Second

// AppSource supplies the configured OAuth app of a provider.
type AppSource interface {
	ProviderApp(provider domain.ProviderType) (domain.OAuthApp, error)
}

// OAuthService runs the authorization code flow against the providers
// in a registry, keeping state and credentials in a CredentialStore.
type OAuthService struct {
	store    driven.CredentialStore
	registry *ProviderRegistry
	apps     AppSource
}

// NewOAuthService creates a new OAuth service.
func NewOAuthService(store driven.CredentialStore, registry *ProviderRegistry, apps AppSource) *OAuthService {
	return &OAuthService{
		store:    store,
		registry: registry,
		apps:     apps,
	}
}

// Authorize issues a CSRF state for scope, stores it and returns the
// provider authorization URL embedding the encoded state.
func (s *OAuthService) Authorize(ctx context.Context, scope domain.Scope) (*driving.AuthorizeResult, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	handler, err := s.registry.Handler(scope.Provider)
	if err != nil {
		return nil, err
	}
	app, err := s.resolveApp(handler)
	if err != nil {
		return nil, err
	}

	token, err := generateStateToken()
	if err != nil {
		return nil, fmt.Errorf("generate state: %w", err)
	}
	rec := domain.StateRecord{Token: token, UserID: scope.UserID, OrgID: scope.OrgID}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	if err := s.store.Put(ctx, scope.StateKey(), data, StateTTL); err != nil {
		return nil, fmt.Errorf("store state: %w", err)
	}

	encoded, err := encodeState(rec)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}

	logger.Debug("oauth: issued state for %s", scope.StateKey())
	return &driving.AuthorizeResult{
		URL:   handler.BuildAuthURL(app, encoded),
		Style: handler.AuthorizeStyle(),
	}, nil
}

// Callback validates and consumes the state, then exchanges the code and
// stores the resulting credential. The state is deleted before the
// exchange so a replayed callback can never reach the provider twice.
func (s *OAuthService) Callback(
	ctx context.Context, provider domain.ProviderType, code, state string,
) (*driving.CallbackResult, error) {
	handler, err := s.registry.Handler(provider)
	if err != nil {
		return nil, err
	}

	presented, err := decodeState(state)
	if err != nil {
		return nil, err
	}
	scope := presented.Scope(provider)
	if err := scope.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidState, err)
	}
	if err := s.checkState(ctx, scope, presented.Token); err != nil {
		return nil, err
	}

	if code == "" {
		return nil, fmt.Errorf("%w: missing authorization code", domain.ErrInvalidInput)
	}
	app, err := s.resolveApp(handler)
	if err != nil {
		return nil, err
	}

	if err := s.consumeState(ctx, scope, presented.Token); err != nil {
		return nil, err
	}

	cred, err := handler.ExchangeCode(ctx, app, code)
	if err != nil {
		logger.Warn("oauth: %s exchange failed for %s: %v", provider, scope.TokenKey(), err)
		return nil, err
	}
	if cred.AccessToken == "" {
		return nil, &domain.ExchangeError{StatusCode: 200, Body: "response did not include access_token"}
	}

	data, err := json.Marshal(cred)
	if err != nil {
		return nil, fmt.Errorf("marshal credential: %w", err)
	}
	if err := s.store.Put(ctx, scope.TokenKey(), data, cred.TTL()); err != nil {
		return nil, fmt.Errorf("store credential: %w", err)
	}

	logger.Info("oauth: stored %s credential for %s (ttl %s)", provider, scope.TokenKey(), cred.TTL())
	return &driving.CallbackResult{Scope: scope}, nil
}

// checkState compares the presented token with the pending state record
// without consuming it.
func (s *OAuthService) checkState(ctx context.Context, scope domain.Scope, token string) error {
	key := scope.StateKey()

	data, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: no pending state for %s", domain.ErrInvalidState, key)
	}

	var stored domain.StateRecord
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("%w: corrupt stored state", domain.ErrInvalidState)
	}
	if subtle.ConstantTimeCompare([]byte(stored.Token), []byte(token)) != 1 {
		return fmt.Errorf("%w: state mismatch", domain.ErrInvalidState)
	}
	return nil
}

// consumeState checks the presented token again and deletes the record.
// A state consumed concurrently fails.
func (s *OAuthService) consumeState(ctx context.Context, scope domain.Scope, token string) error {
	if err := s.checkState(ctx, scope, token); err != nil {
		return err
	}

	key := scope.StateKey()
	removed, err := s.store.Delete(ctx, key)
	if err != nil {
		return fmt.Errorf("consume state: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: state already consumed", domain.ErrInvalidState)
	}
	return nil
}

// Credentials returns the cached credential for scope.
func (s *OAuthService) Credentials(ctx context.Context, scope domain.Scope) (*domain.Credential, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.registry.Handler(scope.Provider); err != nil {
		return nil, err
	}
	return loadCredential(ctx, s.store, scope)
}

func (s *OAuthService) resolveApp(handler driven.OAuthHandler) (domain.OAuthApp, error) {
	app := handler.DefaultApp()
	if s.apps != nil {
		configured, err := s.apps.ProviderApp(handler.Provider())
		if err != nil && !errors.Is(err, domain.ErrProviderNotConfigured) {
			return domain.OAuthApp{}, err
		}
		app = mergeApp(app, configured)
	}
	app.Provider = handler.Provider()
	if err := app.Validate(); err != nil {
		return domain.OAuthApp{}, err
	}
	return app, nil
}

// mergeApp overlays the non-empty fields of configured onto defaults.
func mergeApp(defaults, configured domain.OAuthApp) domain.OAuthApp {
	out := defaults
	if configured.ClientID != "" {
		out.ClientID = configured.ClientID
	}
	if configured.ClientSecret != "" {
		out.ClientSecret = configured.ClientSecret
	}
	if len(configured.Scopes) > 0 {
		out.Scopes = configured.Scopes
	}
	if configured.AuthURL != "" {
		out.AuthURL = configured.AuthURL
	}
	if configured.TokenURL != "" {
		out.TokenURL = configured.TokenURL
	}
	if configured.RedirectURI != "" {
		out.RedirectURI = configured.RedirectURI
	}
	return out
}

func loadCredential(ctx context.Context, store driven.CredentialStore, scope domain.Scope) (*domain.Credential, error) {
	data, ok, err := store.Get(ctx, scope.TokenKey())
	if err != nil {
		return nil, fmt.Errorf("load credential: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCredentialNotFound, scope.TokenKey())
	}
	var cred domain.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, fmt.Errorf("decode credential: %w", err)
	}
	return &cred, nil
}
