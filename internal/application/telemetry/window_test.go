package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRollingWindowEvictsOldest(t *testing.T) {
	t.Parallel()

	w := NewRollingWindow[int](3)
	assert.Equal(t, 0.0, w.Average())
	assert.Equal(t, 0, w.Last())
	assert.Equal(t, 3, w.Cap())

	for _, v := range []int{1, 2, 3, 4, 5} {
		w.Add(v)
	}
	assert.Equal(t, 3, w.Len())
	assert.Equal(t, []int{3, 4, 5}, w.Values())
	assert.Equal(t, 4.0, w.Average())
	assert.Equal(t, 5, w.Last())
}

func TestRollingWindowPartial(t *testing.T) {
	t.Parallel()

	w := NewRollingWindow[float64](100)
	w.Add(10)
	w.Add(15)
	assert.Equal(t, 2, w.Len())
	assert.Equal(t, 12.5, w.Average())
	assert.Equal(t, []float64{10, 15}, w.Values())
}

func TestRollingWindowMinimumCapacity(t *testing.T) {
	t.Parallel()

	w := NewRollingWindow[uint8](0)
	w.Add(200)
	w.Add(250)
	assert.Equal(t, 1, w.Cap())
	assert.Equal(t, 250.0, w.Average())
}
