package brightness

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNonlinearMap(t *testing.T) {
	assert.InDelta(t, 0.5, NonlinearMap(0), 1e-9)
	assert.InDelta(t, 1.0/(1.0+math.Exp(-1)), NonlinearMap(300), 1e-9)

	// Bright values saturate toward 1, darkness toward 0.
	assert.Greater(t, NonlinearMap(5000), 0.999)
	assert.Less(t, NonlinearMap(-5000), 0.001)

	// Extreme inputs stay finite thanks to the exponent clamp.
	assert.False(t, math.IsNaN(NonlinearMap(math.MaxInt32)))
	assert.False(t, math.IsInf(NonlinearMap(math.MinInt32), 0))
}

func TestNonlinearMapMonotonic(t *testing.T) {
	prev := NonlinearMap(-2000)
	for ambient := -1900; ambient <= 2000; ambient += 100 {
		cur := NonlinearMap(ambient)
		assert.Greater(t, cur, prev, "ambient %d", ambient)
		prev = cur
	}
}
