package domain

import "time"

// Item is the provider-agnostic record returned by item listing.
// Items are built once per raw record during normalisation and are not
// modified afterwards.
type Item struct {
	// ID is the provider-native identifier.
	ID string `json:"id"`
	// Name is human readable and never empty.
	Name string `json:"name"`
	// Type discriminates the provider object kind (page, database, contact).
	Type string `json:"type"`

	CreationTime     *time.Time `json:"creation_time"`
	LastModifiedTime *time.Time `json:"last_modified_time"`

	// ParentID references the parent by identifier only.
	ParentID *string `json:"parent_id"`
	// ParentPathOrName is human-readable context for the parent.
	ParentPathOrName *string `json:"parent_path_or_name"`

	URL        *string `json:"url"`
	Directory  bool    `json:"directory"`
	Visibility bool    `json:"visibility"`

	// Fields holds provider-specific auxiliary data.
	Fields map[string]any `json:"fields"`
}

// NewItem returns an item with the default flags applied.
func NewItem(id, itemType string) *Item {
	return &Item{
		ID:         id,
		Type:       itemType,
		Visibility: true,
		Fields:     make(map[string]any),
	}
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
