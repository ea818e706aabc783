package plot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNiceAxisBoundsPadsRange(t *testing.T) {
	min, max := niceAxisBounds(10, 50)
	assert.Less(t, min, 10.0)
	assert.Greater(t, max, 50.0)
}

func TestNiceAxisBoundsDegenerate(t *testing.T) {
	min, max := niceAxisBounds(5, 5)
	assert.Less(t, min, max)

	min, max = niceAxisBounds(7, 3)
	assert.Less(t, min, max)
}

func TestNiceTicksCoverRange(t *testing.T) {
	ticks := niceTicks(0, 100, 6)
	assert.NotEmpty(t, ticks)
	assert.LessOrEqual(t, ticks[0].Value, 0.0)
	assert.GreaterOrEqual(t, ticks[len(ticks)-1].Value, 100.0)
	for i := 1; i < len(ticks); i++ {
		assert.Greater(t, ticks[i].Value, ticks[i-1].Value)
	}
}

func TestNiceTicksEmptyOnBadRange(t *testing.T) {
	assert.Nil(t, niceTicks(5, 5, 6))
	assert.Nil(t, niceTicks(0, 10, 1))
}

func TestCategoryTicksSubsamples(t *testing.T) {
	labels := make([]string, 100)
	for i := range labels {
		labels[i] = "r" + string(rune('0'+i%10))
	}
	ticks := categoryTicks(labels, 12)
	assert.LessOrEqual(t, len(ticks), 14)
	assert.Equal(t, float64(99), ticks[len(ticks)-1].Value)
}

func TestCategoryTicksShortListKeepsAll(t *testing.T) {
	ticks := categoryTicks([]string{"a", "b", "c"}, 12)
	assert.Len(t, ticks, 3)
	assert.Equal(t, "a", ticks[0].Label)
	assert.Equal(t, "c", ticks[2].Label)
}

func TestExtentSkipsNonFinite(t *testing.T) {
	min, max, ok := extent([]float64{3, math.NaN(), 1, math.Inf(1), 2})
	assert.True(t, ok)
	assert.Equal(t, 1.0, min)
	assert.Equal(t, 3.0, max)

	_, _, ok = extent(nil)
	assert.False(t, ok)

	_, _, ok = extent([]float64{math.NaN(), math.Inf(-1)})
	assert.False(t, ok)
}

func TestFormatTick(t *testing.T) {
	assert.Equal(t, "10", formatTick(10))
	assert.Equal(t, "2.5", formatTick(2.5))
	assert.Equal(t, "-3", formatTick(-3))
}
