package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil item service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{OAuth: &mockOAuthService{}})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingItemService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Items: &mockItemService{},
			OAuth: &mockOAuthService{},
		})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil oauth service returns error", func(t *testing.T) {
		ports := &Ports{Items: &mockItemService{}}
		assert.ErrorIs(t, ports.Validate(), ErrMissingOAuthService)
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{Items: &mockItemService{}, OAuth: &mockOAuthService{}}
		assert.NoError(t, ports.Validate())
	})
}

func TestServer_RunHTTP(t *testing.T) {
	server, err := NewServer(&Ports{Items: &mockItemService{}, OAuth: &mockOAuthService{}})
	require.NoError(t, err)

	t.Run("stops when context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- server.RunHTTP(ctx, "127.0.0.1:0") }()

		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("RunHTTP did not return")
		}
	})

	t.Run("invalid address fails to listen", func(t *testing.T) {
		err := server.RunHTTP(context.Background(), "256.0.0.1:99999")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "listen")
	})
}
