package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/sercha-integrations/internal/core/ports/driven"
)

// Ensure CredentialStore implements the interfaces.
var (
	_ driven.CredentialStore = (*CredentialStore)(nil)
	_ driven.ExpiringStore   = (*CredentialStore)(nil)
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// CredentialStore is an in-memory implementation of driven.CredentialStore.
// Expired entries are hidden on read and removed by PurgeExpired.
type CredentialStore struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewCredentialStore creates a new in-memory credential store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// WithClock replaces the store clock. Intended for tests.
func (s *CredentialStore) WithClock(now func() time.Time) *CredentialStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

// Put stores value under key until ttl elapses.
func (s *CredentialStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.entries[key] = entry{value: stored, expiresAt: s.now().Add(ttl)}
	return nil
}

// Get returns the live value under key.
func (s *CredentialStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return nil, false, nil
	}

	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true, nil
}

// Delete removes key and reports whether a live value was removed.
func (s *CredentialStore) Delete(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return false, nil
	}
	delete(s.entries, key)
	return s.now().Before(e.expiresAt), nil
}

// PurgeExpired removes every expired entry.
func (s *CredentialStore) PurgeExpired(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored entries, expired or not.
func (s *CredentialStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
