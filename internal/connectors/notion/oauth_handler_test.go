package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
)

func testApp(tokenURL string) domain.OAuthApp {
	return domain.OAuthApp{
		Provider:     domain.ProviderNotion,
		ClientID:     "client-123",
		ClientSecret: "secret-456",
		RedirectURI:  "http://localhost:8000/integrations/notion/oauth2callback",
		TokenURL:     tokenURL,
	}
}

func TestOAuthHandler_Metadata(t *testing.T) {
	h := NewOAuthHandler(Config{})

	assert.Equal(t, domain.ProviderNotion, h.Provider())
	assert.Equal(t, domain.AuthorizeJSON, h.AuthorizeStyle())
	assert.NotEmpty(t, h.SetupHint())
	assert.Equal(t, defaultAuthURL, h.DefaultApp().AuthURL)
	assert.Equal(t, defaultTokenURL, h.DefaultApp().TokenURL)
}

func TestOAuthHandler_BuildAuthURL(t *testing.T) {
	h := NewOAuthHandler(Config{})
	app := testApp("")

	u, err := url.Parse(h.BuildAuthURL(app, "st"))

	require.NoError(t, err)
	assert.Equal(t, "api.notion.com", u.Host)
	assert.Equal(t, "/v1/oauth/authorize", u.Path)
	q := u.Query()
	assert.Equal(t, "client-123", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "user", q.Get("owner"))
	assert.Equal(t, app.RedirectURI, q.Get("redirect_uri"))
	assert.Equal(t, "st", q.Get("state"))
}

func TestOAuthHandler_ExchangeCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "client-123", user)
		assert.Equal(t, "secret-456", pass)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "authorization_code", body["grant_type"])
		assert.Equal(t, "the-code", body["code"])
		assert.NotContains(t, body, "client_secret")

		_, _ = w.Write([]byte(`{
			"access_token": "secret_tok",
			"token_type": "bearer",
			"bot_id": "b1",
			"workspace_id": "w1",
			"workspace_name": "Acme",
			"owner": {"type": "user"}
		}`))
	}))
	defer srv.Close()

	h := NewOAuthHandler(Config{HTTPClient: srv.Client()})

	cred, err := h.ExchangeCode(context.Background(), testApp(srv.URL), "the-code")

	require.NoError(t, err)
	assert.Equal(t, "secret_tok", cred.AccessToken)
	assert.Equal(t, "w1", cred.ExtraString("workspace_id"))
	assert.Equal(t, "b1", cred.ExtraString("bot_id"))
	assert.Equal(t, domain.DefaultCredentialTTL, cred.TTL())
}

func TestOAuthHandler_ExchangeCode_InvalidGrant(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	h := NewOAuthHandler(Config{HTTPClient: srv.Client()})

	_, err := h.ExchangeCode(context.Background(), testApp(srv.URL), "used")

	var exErr *domain.ExchangeError
	require.ErrorAs(t, err, &exErr)
	assert.Equal(t, `{"error":"invalid_grant"}`, exErr.Body)
}
