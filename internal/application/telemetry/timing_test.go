package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/assist-core/internal/domain"
)

func TestTimingRecordsFastPath(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	agg := New(Options{Clock: clock})

	timing := agg.StartTiming(domain.OperationFastPath)
	clock.Advance(42 * time.Millisecond)
	assert.Equal(t, 42*time.Millisecond, timing.Elapsed())
	timing.Stop()
	timing.Stop()

	snap := agg.Snapshot()
	assert.Equal(t, 1, snap.FastPathHits)
	assert.Equal(t, 42.0, snap.FastPathLastResponseTime)
}

func TestTimingRecordsLLMTokens(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	agg := New(Options{Clock: clock})

	timing := agg.StartTiming(domain.OperationLLM, WithTokenCounter(func() (int, error) { return 120, nil }))
	clock.Advance(1500 * time.Millisecond)
	timing.Stop()

	snap := agg.Snapshot()
	assert.Equal(t, 1, snap.LLMCallsTotal)
	assert.Equal(t, 120, snap.TokensUsedTotal)
	assert.Equal(t, 1500.0, snap.LLMLastResponseTime)
}

func TestTimingIgnoresBrokenTokenCounter(t *testing.T) {
	t.Parallel()

	agg := New(Options{Clock: newFakeClock()})

	agg.StartTiming(domain.OperationLLM, WithTokenCounter(func() (int, error) {
		return 99, errors.New("usage unavailable")
	})).Stop()
	agg.StartTiming(domain.OperationLLM, WithTokenCounter(func() (int, error) {
		panic("bad counter")
	})).Stop()

	snap := agg.Snapshot()
	assert.Equal(t, 2, snap.LLMCallsTotal)
	assert.Equal(t, 0, snap.TokensUsedTotal)
}

func TestMarkFailedSuppressesRecording(t *testing.T) {
	t.Parallel()

	agg := New(Options{Clock: newFakeClock()})
	timing := agg.StartTiming(domain.OperationFastPath)
	timing.MarkFailed()
	timing.Stop()

	snap := agg.Snapshot()
	assert.Equal(t, 0, snap.FastPathHits)
	assert.Equal(t, 0.0, snap.FastPathAvgResponseTime)
}

func TestTrack(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	agg := New(Options{Clock: clock})

	err := agg.Track(context.Background(), domain.OperationFastPath, func(context.Context) error {
		clock.Advance(8 * time.Millisecond)
		return nil
	})
	require.NoError(t, err)

	failure := errors.New("platform unavailable")
	err = agg.Track(context.Background(), domain.OperationFastPath, func(context.Context) error {
		return failure
	})
	assert.ErrorIs(t, err, failure)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err = agg.Track(ctx, domain.OperationFastPath, func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)

	snap := agg.Snapshot()
	assert.Equal(t, 1, snap.FastPathHits)
	assert.Equal(t, 8.0, snap.FastPathLastResponseTime)
}

func TestTrackRepanics(t *testing.T) {
	t.Parallel()

	agg := New(Options{Clock: newFakeClock()})
	assert.PanicsWithValue(t, "llm exploded", func() {
		_ = agg.Track(context.Background(), domain.OperationLLM, func(context.Context) error {
			panic("llm exploded")
		})
	})
	assert.Equal(t, 0, agg.Snapshot().LLMCallsTotal)
}
