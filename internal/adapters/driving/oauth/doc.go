// Package oauth renders the page served to the OAuth popup window at the end
// of an authorization flow, and opens authorization URLs in a browser.
//
// The popup page posts a message to window.opener so the embedding frontend
// learns the outcome, then closes itself:
//
//	{type: "<provider>-auth-success", user_id, org_id}
//	{type: "<provider>-auth-error", error}
package oauth
