// Package normalisers holds the helpers shared by provider item
// normalisers: a depth-bounded search over decoded JSON trees, timestamp
// parsing and placeholder names. Each provider subpackage (hubspot,
// notion) implements driven.ItemNormaliser on top of them.
package normalisers
