// Package api exposes the OAuth flow and item listing over HTTP with gin.
//
// Routes are mounted under /integrations/:provider:
//
//	GET authorize?user_id=&org_id=       302 to the provider, or 200 {"authorization_url"}
//	GET oauth2callback?code=&state=      HTML popup page
//	GET credentials?user_id=&org_id=     200 credential JSON
//	GET items?user_id=&org_id=           200 [item]
//
// Errors are returned as {"error": "..."} with the status chosen by StatusFor.
package api
