package driving

import (
	"context"

	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
)

// ItemService lists normalised provider items.
type ItemService interface {
	// ListItems fetches every record for scope using its cached credential
	// and normalises them. Any failure discards all records.
	ListItems(ctx context.Context, scope domain.Scope) ([]*domain.Item, error)
}
