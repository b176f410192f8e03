package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-integrations/internal/adapters/driven/storage/memory"
)

func TestParseFrom_MapsVariablesToKeys(t *testing.T) {
	vars, err := ParseFrom(map[string]string{
		"SERCHA_STORE_DRIVER":       "redis",
		"SERCHA_REDIS_DB":           "3",
		"SERCHA_RATE_LIMIT_RPS":     "2.5",
		"SERCHA_HUBSPOT_CLIENT_ID":  "hs-id",
		"SERCHA_HUBSPOT_SCOPES":     "oauth,crm.objects.contacts.read",
		"SERCHA_NOTION_REDIRECT_URI": "http://localhost:8000/integrations/notion/oauth2callback",
	})
	require.NoError(t, err)

	keys := vars.Keys()
	assert.Equal(t, "redis", keys["store.driver"])
	assert.Equal(t, 3, keys["store.redis_db"])
	assert.InDelta(t, 2.5, keys["server.rate_limit_rps"], 0)
	assert.Equal(t, "hs-id", keys["providers.hubspot.client_id"])
	assert.Equal(t, []string{"oauth", "crm.objects.contacts.read"}, keys["providers.hubspot.scopes"])
	assert.NotContains(t, keys, "server.addr")
	assert.NotContains(t, keys, "fetch.max_pages")
}

func TestParseFrom_InvalidNumber(t *testing.T) {
	_, err := ParseFrom(map[string]string{"SERCHA_FETCH_MAX_PAGES": "lots"})
	assert.Error(t, err)
}

func TestOverlay_EnvWinsOverBase(t *testing.T) {
	base := memory.NewConfigStore()
	require.NoError(t, base.Set("store.driver", "sqlite"))
	require.NoError(t, base.Set("server.addr", ":9000"))

	vars, err := ParseFrom(map[string]string{"SERCHA_STORE_DRIVER": "redis"})
	require.NoError(t, err)
	o := NewOverlay(base, vars)

	assert.Equal(t, "redis", o.GetString("store.driver"))
	assert.Equal(t, ":9000", o.GetString("server.addr"))
	assert.Equal(t, []string{"store.driver"}, o.Overridden())

	require.NoError(t, o.Set("store.driver", "memory"))
	assert.Equal(t, "redis", o.GetString("store.driver"))
	assert.Equal(t, "memory", base.GetString("store.driver"))
}

func TestDescribe_HidesSecrets(t *testing.T) {
	assert.Equal(t, "********", Describe("providers.notion.client_secret", "s3cret"))
	assert.Equal(t, "2.5", Describe("server.rate_limit_rps", 2.5))
	assert.Equal(t, "redis", Describe("store.driver", "redis"))
}
