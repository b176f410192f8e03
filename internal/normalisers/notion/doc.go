// Package notion normalises Notion search results (pages and databases)
// into domain items.
package notion
