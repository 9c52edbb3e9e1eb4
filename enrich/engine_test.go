package enrich

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id       string
	enriched bool
}

func testConfig() *Config {
	return &Config{Concurrency: 4, FirstPassDelay: 0, RetryPassDelay: 0}
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New[*item](&Config{Concurrency: 0})
	require.ErrorIs(t, err, ErrInvalidConcurrency)

	_, err = New[*item](&Config{Concurrency: 1, FirstPassDelay: time.Second, RetryPassDelay: time.Millisecond})
	require.ErrorIs(t, err, ErrInvalidPacing)

	_, err = New[*item](&Config{Concurrency: 1, FirstPassDelay: -time.Second, RetryPassDelay: time.Second})
	require.ErrorIs(t, err, ErrInvalidPacing)
}

func TestRunEmptyBatch(t *testing.T) {
	engine, err := New[*item](testConfig())
	require.NoError(t, err)

	report, err := engine.Run(context.Background(), nil, func(ctx context.Context, it *item) (*item, error) {
		t.Fatal("transform should not be called")
		return it, nil
	})
	require.NoError(t, err)
	assert.Empty(t, report.Enriched)
	assert.Empty(t, report.Dropped)
}

func TestRunAllSucceed(t *testing.T) {
	engine, err := New[*item](testConfig())
	require.NoError(t, err)

	items := []*item{{id: "a"}, {id: "b"}, {id: "c"}}
	report, err := engine.Run(context.Background(), items, func(ctx context.Context, it *item) (*item, error) {
		it.enriched = true
		return it, nil
	})
	require.NoError(t, err)

	assert.Len(t, report.Enriched, 3)
	assert.Empty(t, report.Dropped)
	assert.Equal(t, 3, report.Submitted())
	for _, it := range report.Enriched {
		assert.True(t, it.enriched)
	}
}

func TestRunAllFailTwoPhasesOnly(t *testing.T) {
	engine, err := New[*item](testConfig())
	require.NoError(t, err)

	var calls atomic.Int64
	items := []*item{{id: "a"}, {id: "b"}, {id: "c"}, {id: "d"}, {id: "e"}}
	report, err := engine.Run(context.Background(), items, func(ctx context.Context, it *item) (*item, error) {
		calls.Add(1)
		return it, errors.New("permanently unavailable")
	})
	require.NoError(t, err)

	assert.Empty(t, report.Enriched)
	assert.Len(t, report.Dropped, 5)
	assert.Equal(t, int64(10), calls.Load(), "each item gets exactly one retry, no more")
}

func TestRunTransientFailuresRecovered(t *testing.T) {
	engine, err := New[*item](testConfig())
	require.NoError(t, err)

	var mu sync.Mutex
	attempts := make(map[string]int)

	items := []*item{{id: "a"}, {id: "b"}, {id: "c"}, {id: "d"}}
	report, err := engine.Run(context.Background(), items, func(ctx context.Context, it *item) (*item, error) {
		mu.Lock()
		attempts[it.id]++
		n := attempts[it.id]
		mu.Unlock()

		if n == 1 {
			return it, errors.New("rate limited")
		}
		it.enriched = true
		return it, nil
	})
	require.NoError(t, err)

	assert.Len(t, report.Enriched, 4, "phase two recovers every transient failure")
	assert.Empty(t, report.Dropped)
}

func TestRunBoundsConcurrency(t *testing.T) {
	config := &Config{Concurrency: 3, FirstPassDelay: 0, RetryPassDelay: 0}
	engine, err := New[*item](config)
	require.NoError(t, err)

	var inFlight, peak atomic.Int64
	items := make([]*item, 30)
	for i := range items {
		items[i] = &item{id: string(rune('a' + i))}
	}

	report, err := engine.Run(context.Background(), items, func(ctx context.Context, it *item) (*item, error) {
		current := inFlight.Add(1)
		for {
			observed := peak.Load()
			if current <= observed || peak.CompareAndSwap(observed, current) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return it, nil
	})
	require.NoError(t, err)

	assert.Len(t, report.Enriched, 30)
	assert.LessOrEqual(t, peak.Load(), int64(3), "admission gate exceeded")
	assert.Greater(t, peak.Load(), int64(1), "work should actually run concurrently")
}

func TestRunPanicIsItemFailure(t *testing.T) {
	engine, err := New[*item](testConfig())
	require.NoError(t, err)

	items := []*item{{id: "a"}, {id: "b"}}
	report, err := engine.Run(context.Background(), items, func(ctx context.Context, it *item) (*item, error) {
		if it.id == "b" {
			panic("malformed reply blew up the parser")
		}
		it.enriched = true
		return it, nil
	})
	require.NoError(t, err)

	assert.Len(t, report.Enriched, 1)
	require.Len(t, report.Dropped, 1)
	assert.Equal(t, "b", report.Dropped[0].id)
}

func TestRunZeroPacingIsFast(t *testing.T) {
	engine, err := New[*item](testConfig())
	require.NoError(t, err)

	items := make([]*item, 50)
	for i := range items {
		items[i] = &item{}
	}

	start := time.Now()
	report, err := engine.Run(context.Background(), items, func(ctx context.Context, it *item) (*item, error) {
		return it, nil
	})
	require.NoError(t, err)

	assert.Len(t, report.Enriched, 50)
	assert.Less(t, time.Since(start), time.Second, "zero pacing must not sleep per item")
}

func TestRunOne(t *testing.T) {
	engine, err := New[*item](testConfig())
	require.NoError(t, err)

	enriched, err := engine.RunOne(context.Background(), &item{id: "a"}, func(ctx context.Context, it *item) (*item, error) {
		it.enriched = true
		return it, nil
	})
	require.NoError(t, err)
	assert.True(t, enriched.enriched)

	_, err = engine.RunOne(context.Background(), &item{id: "b"}, func(ctx context.Context, it *item) (*item, error) {
		return it, errors.New("nope")
	})
	require.ErrorIs(t, err, ErrNotEnriched)
}
