package booking

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	recordsRepo "tripforge/database/repository/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGuard(ttl time.Duration) (*Guard, *recordsRepo.MemoryStore) {
	store := recordsRepo.NewMemoryStore()
	return &Guard{Store: store, TTL: ttl, Logger: zap.NewNop()}, store
}

func TestDeriveKey(t *testing.T) {
	a := DeriveKey("itin_1", "a@example.com", "n1")
	assert.Equal(t, a, DeriveKey("itin_1", "a@example.com", "n1"))
	assert.Len(t, a, 64)

	// Any component change yields a different key.
	assert.NotEqual(t, a, DeriveKey("itin_2", "a@example.com", "n1"))
	assert.NotEqual(t, a, DeriveKey("itin_1", "b@example.com", "n1"))
	assert.NotEqual(t, a, DeriveKey("itin_1", "a@example.com", "n2"))
}

func TestRun_ReplaysCachedResult(t *testing.T) {
	g, _ := newTestGuard(time.Hour)
	ctx := context.Background()
	calls := 0
	compute := func(context.Context) (string, error) {
		calls++
		return "result", nil
	}

	got, replayed, err := Run(ctx, g, "k1", compute)
	require.NoError(t, err)
	assert.False(t, replayed)
	assert.Equal(t, "result", got)

	got, replayed, err = Run(ctx, g, "k1", compute)
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.Equal(t, "result", got)
	assert.Equal(t, 1, calls)
}

func TestRun_FailuresAreNotCached(t *testing.T) {
	g, store := newTestGuard(time.Hour)
	ctx := context.Background()
	calls := 0

	_, _, err := Run(ctx, g, "k1", func(context.Context) (string, error) {
		calls++
		return "", errors.New("transient")
	})
	require.Error(t, err)
	assert.Equal(t, 0, store.Len())

	// The retry under the same key runs compute again and caches the success.
	got, replayed, err := Run(ctx, g, "k1", func(context.Context) (string, error) {
		calls++
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.False(t, replayed)
	assert.Equal(t, "recovered", got)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, store.Len())
}

func TestRun_ConcurrentDuplicatesExecuteOnce(t *testing.T) {
	g, store := newTestGuard(time.Hour)
	ctx := context.Background()

	var calls int32
	gate := make(chan struct{})
	compute := func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-gate // hold the flight open until both callers are in
		return "once", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _, errs[i] = Run(ctx, g, "k1", compute)
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(gate)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, "once", results[0])
	assert.Equal(t, "once", results[1])
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, 1, store.Len())
}

func TestRun_DistinctKeysRunIndependently(t *testing.T) {
	g, _ := newTestGuard(time.Hour)
	ctx := context.Background()
	calls := 0
	compute := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	first, _, err := Run(ctx, g, "k1", compute)
	require.NoError(t, err)
	second, _, err := Run(ctx, g, "k2", compute)
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestRun_ExpiredEntryRunsAgain(t *testing.T) {
	g, _ := newTestGuard(20 * time.Millisecond)
	ctx := context.Background()
	calls := 0
	compute := func(context.Context) (string, error) {
		calls++
		return "v", nil
	}

	_, _, err := Run(ctx, g, "k1", compute)
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond)

	_, replayed, err := Run(ctx, g, "k1", compute)
	require.NoError(t, err)
	assert.False(t, replayed)
	assert.Equal(t, 2, calls)
}

func TestRun_ZeroTTLKeepsResult(t *testing.T) {
	g, _ := newTestGuard(0)
	ctx := context.Background()
	calls := 0
	compute := func(context.Context) (string, error) {
		calls++
		return "v", nil
	}

	_, _, err := Run(ctx, g, "k1", compute)
	require.NoError(t, err)
	_, replayed, err := Run(ctx, g, "k1", compute)
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.Equal(t, 1, calls)
}
