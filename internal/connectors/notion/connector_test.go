package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-integrations/internal/connectors"
	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
)

func TestConnector_FetchAll(t *testing.T) {
	var cursors []any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, searchPath, r.URL.Path)
		assert.Equal(t, DefaultVersion, r.Header.Get("Notion-Version"))
		assert.Equal(t, "Bearer secret_tok", r.Header.Get("Authorization"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(100), body["page_size"])
		assert.Equal(t, map[string]any{"value": "page", "property": "object"}, body["filter"])
		cursors = append(cursors, body["start_cursor"])

		if body["start_cursor"] == nil {
			_, _ = fmt.Fprint(w, `{"object":"list","results":[{"object":"page","id":"a"}],"has_more":true,"next_cursor":"c2"}`)
			return
		}
		_, _ = fmt.Fprint(w, `{"object":"list","results":[{"object":"page","id":"b"}],"has_more":false,"next_cursor":null}`)
	}))
	defer srv.Close()

	c := NewConnector(Config{APIBaseURL: srv.URL},
		connectors.WithHTTPClient(srv.Client()),
		connectors.WithRateLimiter(connectors.NewRateLimiterWithConfig(connectors.RateLimitConfig{})),
	)

	records, err := c.FetchAll(context.Background(), &domain.Credential{AccessToken: "secret_tok"})

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0]["id"])
	assert.Equal(t, "b", records[1]["id"])
	assert.Equal(t, []any{nil, "c2"}, cursors)
}

func TestConnector_NormaliserAndProvider(t *testing.T) {
	c := NewConnector(Config{})

	assert.Equal(t, domain.ProviderNotion, c.Provider())
	item, err := c.Normaliser(nil).Normalise(map[string]any{"object": "page", "id": "abcdef123456"})
	require.NoError(t, err)
	assert.Equal(t, "Page abcdef", item.Name)

	_, err = c.FetchAll(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
