package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredential_UnmarshalProviderResponse(t *testing.T) {
	body := `{
		"access_token": "tok-123",
		"token_type": "bearer",
		"expires_in": 1800,
		"refresh_token": "ref-456",
		"hub_id": 424242,
		"workspace_name": "Acme"
	}`

	var cred Credential
	require.NoError(t, json.Unmarshal([]byte(body), &cred))

	assert.Equal(t, "tok-123", cred.AccessToken)
	assert.Equal(t, "bearer", cred.TokenType)
	assert.Equal(t, "ref-456", cred.RefreshToken)
	assert.Equal(t, int64(1800), cred.ExpiresIn)
	assert.Equal(t, "424242", cred.ExtraString("hub_id"))
	assert.Equal(t, "Acme", cred.ExtraString("workspace_name"))
	assert.Equal(t, 30*time.Minute, cred.TTL())
}

func TestCredential_MarshalFlattensExtra(t *testing.T) {
	cred := Credential{AccessToken: "tok", ExpiresIn: 60}
	cred.SetExtra("workspace_id", "ws-1")
	cred.SetExtra("access_token", "must-not-override")

	data, err := json.Marshal(cred)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "tok", out["access_token"])
	assert.Equal(t, "ws-1", out["workspace_id"])
	assert.InDelta(t, 60, out["expires_in"], 0)
	assert.NotContains(t, out, "refresh_token")
}

func TestCredential_TTLDefault(t *testing.T) {
	assert.Equal(t, DefaultCredentialTTL, (&Credential{}).TTL())
	assert.Equal(t, DefaultCredentialTTL, (&Credential{ExpiresIn: -5}).TTL())
}

func TestCredential_TTLCapsHugeExpiresIn(t *testing.T) {
	var cred Credential
	require.NoError(t, json.Unmarshal([]byte(`{"access_token":"x","expires_in":10000000000}`), &cred))

	assert.Equal(t, MaxCredentialTTL, cred.TTL())
	assert.Positive(t, cred.TTL())
	assert.Equal(t, MaxCredentialTTL, (&Credential{ExpiresIn: 1 << 62}).TTL())
	assert.Equal(t, MaxCredentialTTL, (&Credential{ExpiresIn: int64(MaxCredentialTTL / time.Second)}).TTL())
}

func TestCredential_UnmarshalRejectsNonStringToken(t *testing.T) {
	var cred Credential
	err := json.Unmarshal([]byte(`{"access_token": 12}`), &cred)
	assert.Error(t, err)
}

func TestCredential_ExpiresInAsString(t *testing.T) {
	var cred Credential
	require.NoError(t, json.Unmarshal([]byte(`{"access_token":"t","expires_in":"120"}`), &cred))
	assert.Equal(t, int64(120), cred.ExpiresIn)
}
