package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/doeshing/assist-core/internal/domain"
)

// TimingOption configures a Timing.
type TimingOption func(*Timing)

// WithTokenCounter sets the callback used to read token usage when an LLM
// timing stops. Errors and panics from it are ignored and count as 0 tokens.
func WithTokenCounter(fn func() (int, error)) TimingOption {
	return func(t *Timing) {
		t.tokens = fn
	}
}

// Timing measures one operation and records it on Stop. A failed timing
// records nothing.
type Timing struct {
	agg    *Aggregator
	kind   domain.OperationKind
	tokens func() (int, error)
	start  time.Time

	mu      sync.Mutex
	stopped bool
	failed  bool
}

// StartTiming starts measuring an operation of the given kind.
func (a *Aggregator) StartTiming(kind domain.OperationKind, opts ...TimingOption) *Timing {
	t := &Timing{agg: a, kind: kind}
	for _, opt := range opts {
		opt(t)
	}
	t.start = a.clock.Now()
	return t
}

// MarkFailed suppresses recording. It has no effect after Stop.
func (t *Timing) MarkFailed() {
	t.mu.Lock()
	t.failed = true
	t.mu.Unlock()
}

// Elapsed returns the time since the timing started.
func (t *Timing) Elapsed() time.Duration {
	return t.agg.clock.Now().Sub(t.start)
}

// Stop records the elapsed milliseconds unless the timing failed. Only the
// first call has any effect.
func (t *Timing) Stop() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	failed := t.failed
	t.mu.Unlock()

	if failed {
		return
	}

	ms := float64(t.Elapsed()) / float64(time.Millisecond)
	switch t.kind {
	case domain.OperationFastPath:
		t.agg.RecordFastPathHit(ms)
	case domain.OperationLLM:
		t.agg.RecordLLMCall(ms, t.countTokens())
	}
}

func (t *Timing) countTokens() (tokens int) {
	if t.tokens == nil {
		return 0
	}
	defer func() {
		if r := recover(); r != nil {
			tokens = 0
		}
	}()
	n, err := t.tokens()
	if err != nil {
		return 0
	}
	return n
}

// Track runs fn under a timing of the given kind. When fn returns an error
// or panics the timing is marked failed; a panic is re-raised after the
// timing is closed.
func (a *Aggregator) Track(ctx context.Context, kind domain.OperationKind, fn func(context.Context) error, opts ...TimingOption) (err error) {
	timing := a.StartTiming(kind, opts...)
	defer func() {
		if r := recover(); r != nil {
			timing.MarkFailed()
			timing.Stop()
			panic(r)
		}
		if err != nil {
			timing.MarkFailed()
		}
		timing.Stop()
	}()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("track %s: %w", kind, err)
	}
	return fn(ctx)
}
