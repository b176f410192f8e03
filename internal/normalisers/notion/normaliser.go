package notion

import (
	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
	"github.com/custodia-labs/sercha-integrations/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-integrations/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.ItemNormaliser = (*Normaliser)(nil)

// WorkspaceParent is the parent id given to top-level workspace items.
const WorkspaceParent = "workspace"

// Normaliser maps Notion page and database objects onto items.
type Normaliser struct{}

// New creates a Notion normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise converts one Notion object.
func (n *Normaliser) Normalise(raw map[string]any) (*domain.Item, error) {
	id := normalisers.String(raw, "id")
	if id == "" {
		return nil, &domain.MalformedRecordError{Reason: "notion object has no id"}
	}

	itemType := normalisers.String(raw, "object")
	if itemType == "" {
		itemType = "unknown"
	}

	item := domain.NewItem(id, itemType)
	if name, ok := normalisers.FirstText(raw, "title", "name"); ok {
		item.Name = name
	} else {
		item.Name = normalisers.Placeholder(itemType, id)
	}

	item.CreationTime = normalisers.ParseTime(raw["created_time"], normalisers.UnitSeconds)
	item.LastModifiedTime = normalisers.ParseTime(raw["last_edited_time"], normalisers.UnitSeconds)
	item.ParentID = parentID(normalisers.Object(raw, "parent"))
	item.Directory = itemType == "database"

	url := normalisers.String(raw, "url")
	item.URL = domain.StringPtr(url)
	if url != "" {
		item.Fields["url"] = url
	}
	if archived, ok := raw["archived"].(bool); ok {
		item.Fields["archived"] = archived
	}

	return item, nil
}

// parentID resolves the parent reference by its declared type.
// Unknown parent types yield nil.
func parentID(parent map[string]any) *string {
	if parent == nil {
		return nil
	}
	switch t := normalisers.String(parent, "type"); t {
	case "page_id", "database_id", "block_id":
		return domain.StringPtr(normalisers.String(parent, t))
	case "workspace":
		return domain.StringPtr(WorkspaceParent)
	default:
		return nil
	}
}
