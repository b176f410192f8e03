// Package domain defines the core entities of the integration layer.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Scope: The (provider, org, user) triple that namespaces cached state
//   - StateRecord: A single-use CSRF state issued at authorize time
//   - Credential: An access token returned by a provider's token exchange
//   - Item: The provider-agnostic record returned by item listing
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
