// Package connectors provides the shared machinery for provider connectors:
// a cursor-following paginated fetcher and a rate limiter. Each provider
// subpackage (hubspot, notion) describes its list endpoint with an
// Endpoint and implements driven.OAuthHandler and driven.Connector.
//
// Connectors are registered with the services.ProviderRegistry at startup.
package connectors
