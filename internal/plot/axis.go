package plot

import (
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/floats"
)

// extent returns the finite min and max of vals. The ok result is
// false when no finite value exists.
func extent(vals []float64) (float64, float64, bool) {
	finite := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return 0, 0, false
	}
	return floats.Min(finite), floats.Max(finite), true
}

// niceAxisBounds pads a data range and rounds it to magnitude-friendly
// limits. Degenerate ranges widen so the renderer never divides by a
// zero delta.
func niceAxisBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return 0, 1
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	pad := span * 0.05
	min -= pad
	max += pad
	magnitude := math.Pow(10, math.Floor(math.Log10(max-min)))
	step := magnitude / 10
	min = math.Floor(min/step) * step
	max = math.Ceil(max/step) * step
	return min, max
}

// niceTicks builds ~n labeled ticks across [min, max] using 1/2/2.5/5
// step candidates.
func niceTicks(min, max float64, n int) []chart.Tick {
	if n < 2 || max <= min {
		return nil
	}
	span := max - min
	rawStep := span / float64(n-1)
	magnitude := math.Pow(10, math.Floor(math.Log10(rawStep)))
	var step float64
	bestScore := math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		candidate := c * magnitude
		count := span / candidate
		score := math.Abs(count - float64(n-1))
		if score < bestScore {
			bestScore = score
			step = candidate
		}
	}
	start := math.Floor(min/step) * step
	end := math.Ceil(max/step) * step
	var ticks []chart.Tick
	for v := start; v <= end+step/2; v += step {
		if v < min-step/2 || v > max+step/2 {
			continue
		}
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
		if len(ticks) > n+2 {
			break
		}
	}
	return ticks
}

// categoryTicks subsamples row labels so a categorical x axis stays
// readable. The last label is always kept.
func categoryTicks(labels []string, maxTicks int) []chart.Tick {
	if len(labels) == 0 {
		return nil
	}
	step := 1
	if maxTicks > 1 && len(labels) > maxTicks {
		step = (len(labels) + maxTicks - 1) / maxTicks
	}
	ticks := make([]chart.Tick, 0, maxTicks+1)
	for i := 0; i < len(labels); i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: labels[i]})
	}
	last := len(labels) - 1
	if ticks[len(ticks)-1].Value != float64(last) {
		ticks = append(ticks, chart.Tick{Value: float64(last), Label: labels[last]})
	}
	return ticks
}

func formatTick(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e9 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}
