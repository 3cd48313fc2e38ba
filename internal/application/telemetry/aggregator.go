// Package telemetry aggregates request counters and response-time windows
// for a diagnostics surface, and notifies subscribers when anything changes.
package telemetry

import (
	"math"
	"sync"
	"time"

	"github.com/doeshing/assist-core/internal/domain"
	"github.com/doeshing/assist-core/internal/ports"
)

// Options configures an Aggregator.
type Options struct {
	WindowSize    int
	InitialStatus string
	Clock         ports.Clock
	Logger        ports.Logger
}

// Listener is called after every mutation. Listeners run synchronously on
// the mutating goroutine, outside the aggregator lock.
type Listener func()

type listenerEntry struct {
	id uint64
	fn Listener
}

// Aggregator holds cumulative and day-scoped counters plus rolling response
// time windows. All methods are safe for concurrent use.
type Aggregator struct {
	mu     sync.Mutex
	clock  ports.Clock
	logger ports.Logger

	fastPathTimes *RollingWindow[float64]
	llmTimes      *RollingWindow[float64]

	fastPathHits       int
	fastPathMisses     int
	preResolveHits     int
	preResolveAttempts int
	llmCalls           int
	llmErrors          int
	tokensUsed         int

	currentDay    day
	requestsToday int
	llmCallsToday int
	tokensToday   int

	status          string
	lastRequestTime time.Time

	listeners    []listenerEntry
	nextListener uint64
}

type day struct {
	year  int
	month time.Month
	day   int
}

func dayOf(t time.Time) day {
	y, m, d := t.Date()
	return day{year: y, month: m, day: d}
}

// New creates an aggregator whose current day is the clock's today.
func New(opts Options) *Aggregator {
	if opts.WindowSize <= 0 {
		opts.WindowSize = domain.DefaultWindowSize
	}
	if opts.InitialStatus == "" {
		opts.InitialStatus = domain.StatusOnline
	}
	if opts.Clock == nil {
		opts.Clock = ports.SystemClock{}
	}
	return &Aggregator{
		clock:         opts.Clock,
		logger:        opts.Logger,
		fastPathTimes: NewRollingWindow[float64](opts.WindowSize),
		llmTimes:      NewRollingWindow[float64](opts.WindowSize),
		currentDay:    dayOf(opts.Clock.Now()),
		status:        opts.InitialStatus,
	}
}

// RecordRequest counts an incoming request for today.
func (a *Aggregator) RecordRequest() {
	a.mutate(func() {
		a.rolloverLocked()
		a.requestsToday++
		a.lastRequestTime = a.clock.Now()
	})
}

// RecordFastPathHit counts a fast-path success and its duration.
func (a *Aggregator) RecordFastPathHit(durationMS float64) {
	a.mutate(func() {
		a.fastPathHits++
		a.fastPathTimes.Add(durationMS)
	})
}

// RecordFastPathMiss counts a request that fell back from the fast path.
func (a *Aggregator) RecordFastPathMiss() {
	a.mutate(func() {
		a.fastPathMisses++
	})
}

// RecordPreResolveAttempt counts an entity pre-resolution attempt.
func (a *Aggregator) RecordPreResolveAttempt(success bool) {
	a.mutate(func() {
		a.preResolveAttempts++
		if success {
			a.preResolveHits++
		}
	})
}

// RecordLLMCall counts a completed language model call.
func (a *Aggregator) RecordLLMCall(durationMS float64, tokens int) {
	a.mutate(func() {
		a.rolloverLocked()
		a.llmCalls++
		a.llmCallsToday++
		a.tokensUsed += tokens
		a.tokensToday += tokens
		a.llmTimes.Add(durationMS)
	})
}

// RecordLLMError counts a failed language model call.
func (a *Aggregator) RecordLLMError() {
	a.mutate(func() {
		a.llmErrors++
	})
}

// SetStatus replaces the status string.
func (a *Aggregator) SetStatus(status string) {
	a.mutate(func() {
		a.status = status
	})
}

// AddListener registers fn and returns a function that removes it. Calling
// the returned function more than once is harmless.
func (a *Aggregator) AddListener(fn Listener) func() {
	a.mu.Lock()
	a.nextListener++
	id := a.nextListener
	a.listeners = append(a.listeners, listenerEntry{id: id, fn: fn})
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		for i, entry := range a.listeners {
			if entry.id == id {
				a.listeners = append(a.listeners[:i:i], a.listeners[i+1:]...)
				return
			}
		}
	}
}

// FastPathRate is the fast-path hit percentage, 0 with no samples.
func (a *Aggregator) FastPathRate() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return percent(a.fastPathHits, a.fastPathHits+a.fastPathMisses)
}

// PreResolveRate is the pre-resolve hit percentage, 0 with no attempts.
func (a *Aggregator) PreResolveRate() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return percent(a.preResolveHits, a.preResolveAttempts)
}

// Snapshot returns the current figures. Day-scoped counters are rolled over
// first so a snapshot never reports a previous day as today.
func (a *Aggregator) Snapshot() domain.TelemetrySnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rolloverLocked()

	snap := domain.TelemetrySnapshot{
		Status: a.status,

		FastPathAvgResponseTime:  round1(a.fastPathTimes.Average()),
		FastPathLastResponseTime: round1(a.fastPathTimes.Last()),
		LLMAvgResponseTime:       round1(a.llmTimes.Average()),
		LLMLastResponseTime:      round1(a.llmTimes.Last()),

		FastPathHits:   a.fastPathHits,
		FastPathMisses: a.fastPathMisses,
		FastPathRate:   percent(a.fastPathHits, a.fastPathHits+a.fastPathMisses),

		PreResolveHits:     a.preResolveHits,
		PreResolveAttempts: a.preResolveAttempts,
		PreResolveRate:     percent(a.preResolveHits, a.preResolveAttempts),

		LLMCallsTotal:   a.llmCalls,
		LLMCallsToday:   a.llmCallsToday,
		LLMErrors:       a.llmErrors,
		TokensUsedTotal: a.tokensUsed,
		TokensUsedToday: a.tokensToday,

		RequestsToday: a.requestsToday,
	}
	if !a.lastRequestTime.IsZero() {
		t := a.lastRequestTime
		snap.LastRequestTime = &t
	}
	return snap
}

func (a *Aggregator) mutate(fn func()) {
	a.mu.Lock()
	fn()
	listeners := make([]listenerEntry, len(a.listeners))
	copy(listeners, a.listeners)
	a.mu.Unlock()

	for _, entry := range listeners {
		a.notify(entry)
	}
}

func (a *Aggregator) notify(entry listenerEntry) {
	defer func() {
		if r := recover(); r != nil && a.logger != nil {
			a.logger.Warn("telemetry listener panicked", map[string]interface{}{
				"listener": entry.id,
				"panic":    r,
			})
		}
	}()
	entry.fn()
}

func (a *Aggregator) rolloverLocked() {
	today := dayOf(a.clock.Now())
	if today == a.currentDay {
		return
	}
	a.currentDay = today
	a.requestsToday = 0
	a.llmCallsToday = 0
	a.tokensToday = 0
	if a.logger != nil {
		a.logger.Info("telemetry day rollover, daily counters reset", nil)
	}
}

func percent(hits, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(hits) / float64(total) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
