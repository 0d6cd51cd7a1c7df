package runlock_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelaZQ1/salesforce-job-scraper/internal/runlock"
)

// Integration tests against a real redis. Set TEST_REDIS_URL to run,
// e.g. redis://localhost:6379/1
func testClient(t *testing.T) *redis.Client {
	t.Helper()
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})
	return client
}

func TestLock_MutualExclusion(t *testing.T) {
	rdb := testClient(t)
	ctx := context.Background()

	a := runlock.New(rdb, time.Minute)
	b := runlock.New(rdb, time.Minute)

	ok, err := a.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = b.Acquire(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "second holder must be refused")

	require.NoError(t, a.Release(ctx))

	ok, err = b.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok, "released lock is acquirable again")
	require.NoError(t, b.Release(ctx))
}

func TestLock_ReleaseIsOwnerOnly(t *testing.T) {
	rdb := testClient(t)
	ctx := context.Background()

	owner := runlock.New(rdb, time.Minute)
	intruder := runlock.New(rdb, time.Minute)

	ok, err := owner.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	// A non-owner release must not free the owner's lock.
	require.NoError(t, intruder.Release(ctx))

	ok, err = intruder.Acquire(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "owner still holds the lock")

	require.NoError(t, owner.Release(ctx))
}

func TestLock_Expires(t *testing.T) {
	rdb := testClient(t)
	ctx := context.Background()

	crashed := runlock.New(rdb, 50*time.Millisecond)
	ok, err := crashed.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(100 * time.Millisecond)

	next := runlock.New(rdb, time.Minute)
	ok, err = next.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok, "an expired lock must be acquirable")
	require.NoError(t, next.Release(ctx))
}
