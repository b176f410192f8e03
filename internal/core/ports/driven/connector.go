package driven

import (
	"context"

	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
)

// Connector fetches raw records from a provider's item listing.
type Connector interface {
	// Provider returns the provider this connector serves.
	Provider() domain.ProviderType

	// FetchAll follows the provider's pagination until exhaustion and
	// returns every raw record in provider order. On any error no records
	// are returned.
	FetchAll(ctx context.Context, cred *domain.Credential) ([]map[string]any, error)

	// Normaliser returns the normaliser for records fetched with cred.
	// Some providers need credential fields (e.g. a portal id) to build URLs.
	Normaliser(cred *domain.Credential) ItemNormaliser
}
