// Package redis provides a Redis-backed credential store.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/sercha-integrations/internal/core/ports/driven"
)

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore implements driven.CredentialStore on Redis. Expiry is
// delegated to Redis key TTLs.
type CredentialStore struct {
	client redis.UniversalClient
	prefix string
}

// Options configures a Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key, e.g. "sercha:".
	Prefix string
}

// New connects to Redis and verifies the connection with PING.
func New(ctx context.Context, opts Options) (*CredentialStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	return NewCredentialStore(client, opts.Prefix), nil
}

// NewCredentialStore wraps an existing client.
func NewCredentialStore(client redis.UniversalClient, prefix string) *CredentialStore {
	return &CredentialStore{client: client, prefix: prefix}
}

// Put stores value under key with ttl.
func (s *CredentialStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("put %s: ttl must be positive", key)
	}
	if err := s.client.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Get returns the value under key; redis.Nil maps to absent.
func (s *CredentialStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Delete removes key. DEL is atomic, so of two racing deletes exactly one
// reports removal.
func (s *CredentialStore) Delete(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Del(ctx, s.prefix+key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, fmt.Errorf("delete %s: %w", key, err)
	}
	return n > 0, nil
}

// Close closes the underlying client.
func (s *CredentialStore) Close() error {
	return s.client.Close()
}
