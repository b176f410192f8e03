package domain

// ProviderType identifies an integration provider.
type ProviderType string

const (
	// ProviderHubSpot is the HubSpot CRM.
	ProviderHubSpot ProviderType = "hubspot"
	// ProviderNotion is the Notion workspace API.
	ProviderNotion ProviderType = "notion"
)

// AllProviderTypes returns all supported provider types.
func AllProviderTypes() []ProviderType {
	return []ProviderType{ProviderHubSpot, ProviderNotion}
}

// IsValid returns true if the provider type is supported.
func (p ProviderType) IsValid() bool {
	switch p {
	case ProviderHubSpot, ProviderNotion:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p ProviderType) String() string {
	return string(p)
}

// DisplayName returns the human-readable provider name.
func (p ProviderType) DisplayName() string {
	switch p {
	case ProviderHubSpot:
		return "HubSpot"
	case ProviderNotion:
		return "Notion"
	default:
		return string(p)
	}
}

// AuthorizeStyle describes how the authorize endpoint hands the
// authorization URL back to the caller.
type AuthorizeStyle string

const (
	// AuthorizeRedirect answers with a 302 to the provider.
	AuthorizeRedirect AuthorizeStyle = "redirect"
	// AuthorizeJSON answers with {"authorization_url": ...}.
	AuthorizeJSON AuthorizeStyle = "json"
)
