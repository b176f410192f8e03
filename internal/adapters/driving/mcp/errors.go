// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants list the items of connected providers and check
// whether a user has connected a provider.
package mcp

import "errors"

// ErrMissingItemService is returned when the item service is not provided.
var ErrMissingItemService = errors.New("mcp: item service is required")

// ErrMissingOAuthService is returned when the OAuth service is not provided.
var ErrMissingOAuthService = errors.New("mcp: oauth service is required")
