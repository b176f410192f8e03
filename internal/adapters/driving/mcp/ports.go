package mcp

import (
	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
	"github.com/custodia-labs/sercha-integrations/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Items lists normalised provider items.
	Items driving.ItemService

	// OAuth reads cached credentials.
	OAuth driving.OAuthService

	// Providers lists the registered providers for the providers resource.
	Providers []domain.ProviderType
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Items == nil {
		return ErrMissingItemService
	}
	if p.OAuth == nil {
		return ErrMissingOAuthService
	}
	return nil
}
