// Package notion implements the Notion OAuth handler and the search
// connector.
//
// Notion's token endpoint takes a JSON body with the client credentials in a
// Basic Authorization header. Items are listed through POST /v1/search,
// filtered to pages, following start_cursor/next_cursor while has_more is
// true.
package notion
