package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
)

// ScopeInput identifies whose provider connection a tool acts on.
type ScopeInput struct {
	Provider string `json:"provider" jsonschema:"the provider name: hubspot or notion"`
	UserID   string `json:"user_id" jsonschema:"the user who connected the provider"`
	OrgID    string `json:"org_id" jsonschema:"the organisation of the user"`
}

func (in ScopeInput) scope() (domain.Scope, error) {
	return domain.NewScope(domain.ProviderType(in.Provider), in.OrgID, in.UserID)
}

// ListItemsOutput is the output schema for the list_items tool.
type ListItemsOutput struct {
	Items []ItemOutput `json:"items"`
	Count int          `json:"count"`
}

// ItemOutput represents a single provider item.
type ItemOutput struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Type             string         `json:"type"`
	CreationTime     string         `json:"creation_time,omitempty"`
	LastModifiedTime string         `json:"last_modified_time,omitempty"`
	ParentID         string         `json:"parent_id,omitempty"`
	ParentPathOrName string         `json:"parent_path_or_name,omitempty"`
	URL              string         `json:"url,omitempty"`
	Directory        bool           `json:"directory"`
	Fields           map[string]any `json:"fields,omitempty"`
}

// CredentialsStatusOutput is the output schema for the
// get_credentials_status tool. The token itself is never returned.
type CredentialsStatusOutput struct {
	Connected bool   `json:"connected"`
	TokenType string `json:"token_type,omitempty"`
	// ExpiresIn is the lifetime granted by the provider, in seconds.
	ExpiresIn int64 `json:"expires_in,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_items",
		Description: "List every item (pages, databases, contacts) a user has connected from a provider",
	}, s.handleListItems)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_credentials_status",
		Description: "Report whether a user has a live connection to a provider",
	}, s.handleCredentialsStatus)
}

// handleListItems handles the list_items tool invocation.
func (s *Server) handleListItems(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ScopeInput,
) (*mcp.CallToolResult, ListItemsOutput, error) {
	scope, err := input.scope()
	if err != nil {
		return nil, ListItemsOutput{}, err
	}

	items, err := s.ports.Items.ListItems(ctx, scope)
	if err != nil {
		return nil, ListItemsOutput{}, toolError(scope, err)
	}

	output := ListItemsOutput{
		Items: make([]ItemOutput, len(items)),
		Count: len(items),
	}
	for i, item := range items {
		output.Items[i] = itemOutput(item)
	}

	return nil, output, nil
}

// handleCredentialsStatus handles the get_credentials_status tool invocation.
func (s *Server) handleCredentialsStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ScopeInput,
) (*mcp.CallToolResult, CredentialsStatusOutput, error) {
	scope, err := input.scope()
	if err != nil {
		return nil, CredentialsStatusOutput{}, err
	}

	cred, err := s.ports.OAuth.Credentials(ctx, scope)
	if errors.Is(err, domain.ErrCredentialNotFound) {
		return nil, CredentialsStatusOutput{Connected: false}, nil
	}
	if err != nil {
		return nil, CredentialsStatusOutput{}, toolError(scope, err)
	}

	return nil, CredentialsStatusOutput{
		Connected: true,
		TokenType: cred.TokenType,
		ExpiresIn: cred.ExpiresIn,
	}, nil
}

// toolError rewrites service errors into messages an assistant can act on.
func toolError(scope domain.Scope, err error) error {
	switch {
	case errors.Is(err, domain.ErrCredentialNotFound):
		return fmt.Errorf("%s is not connected for user %s; ask the user to authorize it first", scope.Provider, scope.UserID)
	case errors.Is(err, domain.ErrUnsupportedProvider):
		return fmt.Errorf("unknown provider %q", scope.Provider)
	default:
		return err
	}
}

func itemOutput(item *domain.Item) ItemOutput {
	return ItemOutput{
		ID:               item.ID,
		Name:             item.Name,
		Type:             item.Type,
		CreationTime:     formatTime(item.CreationTime),
		LastModifiedTime: formatTime(item.LastModifiedTime),
		ParentID:         deref(item.ParentID),
		ParentPathOrName: deref(item.ParentPathOrName),
		URL:              deref(item.URL),
		Directory:        item.Directory,
		Fields:           item.Fields,
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
