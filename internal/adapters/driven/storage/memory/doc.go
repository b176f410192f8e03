// Package memory provides in-memory implementations of driven port
// interfaces: a TTL credential store and a config store.
package memory
