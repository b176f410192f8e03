package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
)

func TestProviderRegistry(t *testing.T) {
	r := NewProviderRegistry()
	notion := newMockOAuthHandler(domain.ProviderNotion)
	hubspot := newMockOAuthHandler(domain.ProviderHubSpot)
	conn := &mockConnector{provider: domain.ProviderHubSpot}

	r.Register(notion, nil)
	r.Register(hubspot, conn)

	h, err := r.Handler(domain.ProviderNotion)
	require.NoError(t, err)
	assert.Same(t, notion, h)

	c, err := r.Connector(domain.ProviderHubSpot)
	require.NoError(t, err)
	assert.Same(t, conn, c)

	_, err = r.Connector(domain.ProviderNotion)
	assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)

	_, err = r.Handler(domain.ProviderType("airtable"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)

	assert.Equal(t, []domain.ProviderType{domain.ProviderHubSpot, domain.ProviderNotion}, r.Providers())
}

func TestProviderRegistry_Empty(t *testing.T) {
	r := NewProviderRegistry()

	assert.Empty(t, r.Providers())
	_, err := r.Handler(domain.ProviderHubSpot)
	assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)
}
