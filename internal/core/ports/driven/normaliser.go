package driven

import "github.com/custodia-labs/sercha-integrations/internal/core/domain"

// ItemNormaliser maps one raw provider record onto a domain.Item.
// It must be pure: the same record always yields the same item.
type ItemNormaliser interface {
	// Normalise returns *domain.MalformedRecordError only when the record
	// lacks a required identifier. Missing optional fields become nil.
	Normalise(raw map[string]any) (*domain.Item, error)
}
