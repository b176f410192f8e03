// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services depend only on domain and port packages; provider specifics
// live behind driven.OAuthHandler and driven.Connector.
package services
