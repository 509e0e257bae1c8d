package brightness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmoothingWindowMean(t *testing.T) {
	w := newSmoothingWindow(3)

	assert.Zero(t, w.Mean())
	assert.Zero(t, w.Size())

	w.Push(10)
	assert.InDelta(t, 10.0, w.Mean(), 1e-9)

	w.Push(20)
	assert.InDelta(t, 15.0, w.Mean(), 1e-9)

	w.Push(30)
	assert.Equal(t, 3, w.Size())
	assert.InDelta(t, 20.0, w.Mean(), 1e-9)
}

func TestSmoothingWindowEvictsOldest(t *testing.T) {
	w := newSmoothingWindow(3)
	for _, v := range []float64{10, 20, 30, 40} {
		w.Push(v)
	}

	assert.Equal(t, 3, w.Size())
	assert.InDelta(t, (20.0+30.0+40.0)/3, w.Mean(), 1e-9)
}

func TestSmoothingWindowClear(t *testing.T) {
	w := newSmoothingWindow(3)
	w.Push(50)
	w.Push(60)

	w.Clear()
	assert.Zero(t, w.Size())
	assert.Zero(t, w.Mean())

	w.Push(70)
	assert.InDelta(t, 70.0, w.Mean(), 1e-9)
}
