package telemetry

import "golang.org/x/exp/constraints"

// Number is any sample type a RollingWindow can average.
type Number interface {
	constraints.Integer | constraints.Float
}

// RollingWindow is a fixed-capacity FIFO of samples. Once full, each Add
// overwrites the oldest sample. It is not safe for concurrent use.
type RollingWindow[T Number] struct {
	samples []T
	next    int
	full    bool
	last    T
}

// NewRollingWindow creates a window holding at most capacity samples.
// A non-positive capacity is treated as 1.
func NewRollingWindow[T Number](capacity int) *RollingWindow[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &RollingWindow[T]{samples: make([]T, capacity)}
}

// Add appends a sample, evicting the oldest one when the window is full.
func (w *RollingWindow[T]) Add(v T) {
	w.samples[w.next] = v
	w.last = v
	w.next++
	if w.next == len(w.samples) {
		w.next = 0
		w.full = true
	}
}

// Average is the arithmetic mean of the current contents, 0 when empty.
func (w *RollingWindow[T]) Average() float64 {
	n := w.Len()
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range w.samples[:n] {
		sum += float64(v)
	}
	return sum / float64(n)
}

// Last returns the most recently added sample, or the zero value.
func (w *RollingWindow[T]) Last() T {
	return w.last
}

// Len is the number of samples currently held.
func (w *RollingWindow[T]) Len() int {
	if w.full {
		return len(w.samples)
	}
	return w.next
}

// Cap is the maximum number of samples held.
func (w *RollingWindow[T]) Cap() int {
	return len(w.samples)
}

// Values returns the current samples, oldest first.
func (w *RollingWindow[T]) Values() []T {
	if !w.full {
		return append([]T(nil), w.samples[:w.next]...)
	}
	out := make([]T, 0, len(w.samples))
	out = append(out, w.samples[w.next:]...)
	return append(out, w.samples[:w.next]...)
}
