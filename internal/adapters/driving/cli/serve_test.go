package cli

import (
	"bytes"
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-integrations/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-integrations/internal/logger"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestServeCmd_HasAddrFlag(t *testing.T) {
	flag := serveCmd.Flags().Lookup("addr")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestPurgeExpired_RemovesExpiredRecords(t *testing.T) {
	clock := &testClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := memory.NewCredentialStore().WithClock(clock.Now)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, store.Put(ctx, "notion:o:u:state", []byte("{}"), time.Minute))
	require.NoError(t, store.Put(ctx, "notion:o:u:token", []byte("{}"), time.Hour))
	clock.Advance(2 * time.Minute)

	done := make(chan struct{})
	go func() {
		purgeExpired(ctx, store, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return store.Len() == 1 }, time.Second, 5*time.Millisecond)

	_, ok, err := store.Get(ctx, "notion:o:u:token")
	require.NoError(t, err)
	assert.True(t, ok)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("purge loop did not stop")
	}
}

func TestPurgeOnce_LogsRemainingRecords(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetVerbose(true)
	t.Cleanup(func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	})

	clock := &testClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := memory.NewCredentialStore().WithClock(clock.Now)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "hubspot:o:u:state", []byte("{}"), time.Minute))
	require.NoError(t, store.Put(ctx, "hubspot:o:u:token", []byte("{}"), time.Hour))
	clock.Advance(2 * time.Minute)

	purgeOnce(ctx, store)

	assert.Contains(t, buf.String(), "purged 1 expired records, 1 remain")
	assert.Equal(t, 1, store.Len())
}
