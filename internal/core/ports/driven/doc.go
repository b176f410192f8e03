// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CredentialStore: Key-value store with per-key TTL holding CSRF
//     state and access credentials (memory, Redis or SQLite)
//   - OAuthHandler: Provider-specific authorization URL and code exchange
//   - Connector: Fetches every raw record of a provider's item listing
//   - ItemNormaliser: Maps one raw record onto a domain.Item
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
