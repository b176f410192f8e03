package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScope_Keys(t *testing.T) {
	s, err := NewScope(ProviderHubSpot, "org-1", "user-9")
	require.NoError(t, err)

	assert.Equal(t, "hubspot:org-1:user-9:state", s.StateKey())
	assert.Equal(t, "hubspot:org-1:user-9:token", s.TokenKey())
}

func TestScope_Validate(t *testing.T) {
	tests := []struct {
		name  string
		scope Scope
		ok    bool
	}{
		{"valid", Scope{Provider: ProviderNotion, OrgID: "o", UserID: "u"}, true},
		{"missing provider", Scope{OrgID: "o", UserID: "u"}, false},
		{"missing org", Scope{Provider: ProviderNotion, UserID: "u"}, false},
		{"missing user", Scope{Provider: ProviderNotion, OrgID: "o"}, false},
		{"separator in org", Scope{Provider: ProviderNotion, OrgID: "o:x", UserID: "u"}, false},
		{"separator in user", Scope{Provider: ProviderNotion, OrgID: "o", UserID: "u:token"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scope.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestProviderType_IsValid(t *testing.T) {
	for _, p := range AllProviderTypes() {
		assert.True(t, p.IsValid(), p)
	}
	assert.False(t, ProviderType("salesforce").IsValid())
	assert.Equal(t, "HubSpot", ProviderHubSpot.DisplayName())
}
