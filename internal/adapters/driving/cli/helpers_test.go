package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/sercha-integrations/internal/adapters/driven/config/env"
	"github.com/custodia-labs/sercha-integrations/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
	"github.com/custodia-labs/sercha-integrations/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-integrations/internal/core/services"
)

type fakeItemService struct {
	mu     sync.Mutex
	items  []*domain.Item
	err    error
	scopes []domain.Scope
}

func (f *fakeItemService) ListItems(_ context.Context, scope domain.Scope) ([]*domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scopes = append(f.scopes, scope)
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type fakeOAuthService struct {
	authorizeURL string
	authorizeErr error
	cred         *domain.Credential
	credErr      error
	scopes       []domain.Scope
}

func (f *fakeOAuthService) Authorize(_ context.Context, scope domain.Scope) (*driving.AuthorizeResult, error) {
	f.scopes = append(f.scopes, scope)
	if f.authorizeErr != nil {
		return nil, f.authorizeErr
	}
	return &driving.AuthorizeResult{URL: f.authorizeURL, Style: domain.AuthorizeRedirect}, nil
}

func (f *fakeOAuthService) Callback(
	_ context.Context, provider domain.ProviderType, _, _ string,
) (*driving.CallbackResult, error) {
	return &driving.CallbackResult{Scope: domain.Scope{Provider: provider}}, nil
}

func (f *fakeOAuthService) Credentials(_ context.Context, scope domain.Scope) (*domain.Credential, error) {
	f.scopes = append(f.scopes, scope)
	if f.credErr != nil {
		return nil, f.credErr
	}
	if f.cred == nil {
		return nil, domain.ErrCredentialNotFound
	}
	return f.cred, nil
}

type testServices struct {
	items  *fakeItemService
	oauth  *fakeOAuthService
	config *memory.ConfigStore
}

// setupTestServices swaps the package services for fakes backed by an
// in-memory config store and restores everything on cleanup.
func setupTestServices(t *testing.T, vars env.Variables) *testServices {
	t.Helper()

	ts := &testServices{
		items:  &fakeItemService{},
		oauth:  &fakeOAuthService{authorizeURL: "https://provider.example/authorize?state=abc"},
		config: memory.NewConfigStore(),
	}

	oldSettings, oldOAuth, oldItems := settingsService, oauthService, itemService
	oldOverlay, oldProviders, oldStore := configOverlay, providerTypes, credentialStore

	configOverlay = env.NewOverlay(ts.config, vars)
	settingsService = services.NewSettingsService(configOverlay)
	oauthService = ts.oauth
	itemService = ts.items
	providerTypes = domain.AllProviderTypes()

	t.Cleanup(func() {
		settingsService, oauthService, itemService = oldSettings, oldOAuth, oldItems
		configOverlay, providerTypes, credentialStore = oldOverlay, oldProviders, oldStore
		for _, c := range []*cobra.Command{itemsCmd, authorizeCmd, credentialsCmd, configShowCmd, configSetAppCmd, serveCmd} {
			resetFlags(c)
		}
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	})
	return ts
}

// resetFlags clears values and Changed markers left by a previous Execute.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}
