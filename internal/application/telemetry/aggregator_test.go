package telemetry

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 23, 50, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type recordingLogger struct {
	mu    sync.Mutex
	warns []string
	infos []string
}

func (l *recordingLogger) Debug(string, map[string]interface{}) {}

func (l *recordingLogger) Info(msg string, _ map[string]interface{}) {
	l.mu.Lock()
	l.infos = append(l.infos, msg)
	l.mu.Unlock()
}

func (l *recordingLogger) Warn(msg string, _ map[string]interface{}) {
	l.mu.Lock()
	l.warns = append(l.warns, msg)
	l.mu.Unlock()
}

func (l *recordingLogger) Error(string, error, map[string]interface{}) {}

func TestFastPathRate(t *testing.T) {
	t.Parallel()

	agg := New(Options{Clock: newFakeClock()})
	assert.Equal(t, 0.0, agg.FastPathRate())

	agg.RecordFastPathHit(10)
	agg.RecordFastPathHit(20)
	agg.RecordFastPathHit(30)
	agg.RecordFastPathMiss()
	assert.Equal(t, 75.0, agg.FastPathRate())

	snap := agg.Snapshot()
	assert.Equal(t, 3, snap.FastPathHits)
	assert.Equal(t, 1, snap.FastPathMisses)
	assert.Equal(t, 75.0, snap.FastPathRate)
	assert.Equal(t, 20.0, snap.FastPathAvgResponseTime)
	assert.Equal(t, 30.0, snap.FastPathLastResponseTime)
}

func TestPreResolveRate(t *testing.T) {
	t.Parallel()

	agg := New(Options{Clock: newFakeClock()})
	assert.Equal(t, 0.0, agg.PreResolveRate())

	agg.RecordPreResolveAttempt(true)
	agg.RecordPreResolveAttempt(false)
	agg.RecordPreResolveAttempt(false)
	assert.Equal(t, 33.3, agg.PreResolveRate())
}

func TestDayRollover(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	logger := &recordingLogger{}
	agg := New(Options{Clock: clock, Logger: logger})

	agg.RecordRequest()
	agg.RecordLLMCall(100, 40)
	agg.RecordLLMCall(200, 60)

	clock.Advance(20 * time.Minute)
	agg.RecordLLMCall(300, 5)

	snap := agg.Snapshot()
	assert.Equal(t, 1, snap.LLMCallsToday)
	assert.Equal(t, 5, snap.TokensUsedToday)
	assert.Equal(t, 0, snap.RequestsToday)
	assert.Equal(t, 3, snap.LLMCallsTotal)
	assert.Equal(t, 105, snap.TokensUsedTotal)
	assert.Equal(t, 200.0, snap.LLMAvgResponseTime)
	assert.Equal(t, 300.0, snap.LLMLastResponseTime)
	assert.Equal(t, []string{"telemetry day rollover, daily counters reset"}, logger.infos)
}

func TestSnapshotRollsOverWithoutMutation(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	agg := New(Options{Clock: clock})
	agg.RecordRequest()
	require.Equal(t, 1, agg.Snapshot().RequestsToday)

	clock.Advance(24 * time.Hour)
	assert.Equal(t, 0, agg.Snapshot().RequestsToday)
}

func TestSnapshotIsStable(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	agg := New(Options{Clock: clock})
	agg.RecordRequest()
	agg.RecordFastPathHit(12.34)
	agg.RecordLLMError()

	first := agg.Snapshot()
	second := agg.Snapshot()
	assert.Equal(t, first, second)
	require.NotNil(t, first.LastRequestTime)
	assert.True(t, first.LastRequestTime.Equal(clock.Now()))
	assert.Equal(t, 12.3, first.FastPathAvgResponseTime)
	assert.Equal(t, 1, first.LLMErrors)
	assert.Equal(t, "online", first.Status)
}

func TestSnapshotBeforeAnyRequest(t *testing.T) {
	t.Parallel()

	agg := New(Options{Clock: newFakeClock(), InitialStatus: "starting"})
	snap := agg.Snapshot()
	assert.Nil(t, snap.LastRequestTime)
	assert.Equal(t, "starting", snap.Status)

	agg.SetStatus("degraded")
	assert.Equal(t, "degraded", agg.Snapshot().Status)
}

func TestListenersSurvivePanics(t *testing.T) {
	t.Parallel()

	logger := &recordingLogger{}
	agg := New(Options{Clock: newFakeClock(), Logger: logger})

	var order []string
	agg.AddListener(func() { order = append(order, "first") })
	agg.AddListener(func() { panic("boom") })
	agg.AddListener(func() { order = append(order, "third") })

	agg.RecordFastPathMiss()
	agg.RecordFastPathMiss()

	assert.Equal(t, []string{"first", "third", "first", "third"}, order)
	assert.Len(t, logger.warns, 2)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	t.Parallel()

	agg := New(Options{Clock: newFakeClock()})

	var a, b int
	removeA := agg.AddListener(func() { a++ })
	agg.AddListener(func() { b++ })

	agg.RecordRequest()
	removeA()
	removeA()
	agg.RecordRequest()

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestListenerMayReadSnapshot(t *testing.T) {
	t.Parallel()

	agg := New(Options{Clock: newFakeClock()})
	var seen int
	agg.AddListener(func() { seen = agg.Snapshot().FastPathHits })

	agg.RecordFastPathHit(5)
	assert.Equal(t, 1, seen)
}

func TestConcurrentRecording(t *testing.T) {
	t.Parallel()

	agg := New(Options{})
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				agg.RecordFastPathHit(1)
				agg.RecordFastPathMiss()
			}
		}()
	}
	wg.Wait()

	snap := agg.Snapshot()
	assert.Equal(t, 1000, snap.FastPathHits)
	assert.Equal(t, 50.0, snap.FastPathRate)
}
