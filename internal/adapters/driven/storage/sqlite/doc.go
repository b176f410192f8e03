// Package sqlite provides a SQLite-backed credential store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Values live in a single key-value table with an expiry
// column; expired rows are invisible to reads and removed by PurgeExpired.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory ("NNN_name.up.sql").
//
// # Data Location
//
// By default, the database is stored at ~/.sercha-integrations/data/credentials.db
//
// # Thread Safety
//
// All operations are thread-safe. Single-use deletes rely on
// DELETE ... RETURNING so that exactly one caller observes the removal.
package sqlite
