// Package file stores configuration in a TOML file on disk, by default
// ~/.sercha-integrations/config.toml. Provider OAuth apps live under
// [providers.<name>] tables; server, store and fetch settings under their
// own tables.
package file
