package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for Sercha resources.
const uriScheme = "sercha://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "providers",
		Name:        "providers",
		Description: "Providers that can be connected and listed",
		MIMEType:    "application/json",
	}, s.handleProvidersResource)
}

// handleProvidersResource returns the registered providers.
func (s *Server) handleProvidersResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type providerInfo struct {
		Name        string `json:"name"`
		DisplayName string `json:"display_name"`
	}

	infos := make([]providerInfo, len(s.ports.Providers))
	for i, p := range s.ports.Providers {
		infos[i] = providerInfo{Name: string(p), DisplayName: p.DisplayName()}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling providers: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
