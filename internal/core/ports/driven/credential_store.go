package driven

import (
	"context"
	"time"
)

// CredentialStore is a key-value store with per-key expiry.
// Keys are built from domain.Scope; values are opaque serialised records.
// Implementations must be atomic per key; no other coordination is assumed.
type CredentialStore interface {
	// Put stores value under key, overwriting any existing value.
	// The value must be unreadable once ttl has elapsed (best effort).
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get returns the value under key. The boolean is false, with a nil
	// error, when the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Delete removes key. It is idempotent; the boolean reports whether
	// this call removed a live value.
	Delete(ctx context.Context, key string) (bool, error)
}

// ExpiringStore is implemented by stores that keep expired entries until
// they are purged. Redis expires keys itself and does not implement it.
type ExpiringStore interface {
	// PurgeExpired removes expired entries and returns how many were removed.
	PurgeExpired(ctx context.Context) (int, error)
}
