package plot

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"wavescope/domain/core"
	"wavescope/internal/frame"
)

// Format selects the render encoding
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

const (
	defaultWidth  = 900
	defaultHeight = 420
	// maxRenderDim caps either render dimension; the PNG raster
	// allocates four bytes per pixel.
	maxRenderDim  = 4096
	maxLabelTicks = 12
)

// Canvas holds the assembled waveform chart plus any cursor overlays
// until rendering. Waveform traces go in first; overlays append in
// call order, so drawing cursors in id order keeps stacking
// deterministic and every overlay sits above the traces.
type Canvas struct {
	xName  string
	xs     []float64
	ticks  []chart.Tick
	series []chart.Series
	nWave  int
	yMin   float64
	yMax   float64
	width  int
	height int
}

// Build assembles the line chart for the selected columns over the
// full frame. Every failure wraps core.ErrChartBuild so callers can
// surface the one inline message the workbench shows for a chart that
// cannot be drawn.
func Build(f *frame.Frame, selected []string) (*Canvas, error) {
	if f == nil || f.Nrow() == 0 {
		return nil, fmt.Errorf("%w: no rows to draw", core.ErrChartBuild)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: %w", core.ErrChartBuild, core.ErrEmptySelection)
	}

	xs, numericIndex := f.IndexFloats()
	var ticks []chart.Tick
	if !numericIndex {
		labels := f.IndexLabels()
		xs = make([]float64, len(labels))
		for i := range xs {
			xs[i] = float64(i)
		}
		ticks = categoryTicks(labels, maxLabelTicks)
	}

	cv := &Canvas{
		xName:  f.IndexColumn(),
		xs:     xs,
		ticks:  ticks,
		width:  defaultWidth,
		height: defaultHeight,
	}

	first := true
	for i, name := range selected {
		if !f.HasColumn(name) {
			return nil, fmt.Errorf("%w: unknown waveform %q", core.ErrChartBuild, name)
		}
		if !f.IsNumeric(name) {
			return nil, fmt.Errorf("%w: %w: %q is not numeric", core.ErrChartBuild, core.ErrNonNumericSelection, name)
		}
		ys, err := f.ColumnFloats(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrChartBuild, err)
		}
		lo, hi, ok := extent(ys)
		if ok {
			if first || lo < cv.yMin {
				cv.yMin = lo
			}
			if first || hi > cv.yMax {
				cv.yMax = hi
			}
			first = false
		}
		cv.series = append(cv.series, chart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: 2.0,
				StrokeColor: WaveformPalette[i%len(WaveformPalette)],
			},
		})
	}
	if first {
		return nil, fmt.Errorf("%w: selected waveforms have no plottable values", core.ErrChartBuild)
	}

	// Single-row frames duplicate the point so the renderer has a
	// non-zero x delta to work with.
	if len(cv.xs) == 1 {
		cv.widenSinglePoint()
	}

	cv.nWave = len(cv.series)
	cv.yMin, cv.yMax = niceAxisBounds(cv.yMin, cv.yMax)
	return cv, nil
}

func (c *Canvas) widenSinglePoint() {
	x0 := c.xs[0]
	c.xs = []float64{x0, x0 + 1}
	for i, s := range c.series {
		cs, ok := s.(chart.ContinuousSeries)
		if !ok || len(cs.YValues) != 1 {
			continue
		}
		cs.XValues = c.xs
		cs.YValues = []float64{cs.YValues[0], cs.YValues[0]}
		c.series[i] = cs
	}
}

// SetSize overrides the default render dimensions. Non-positive
// values keep the current dimension; oversize values cap at
// maxRenderDim.
func (c *Canvas) SetSize(width, height int) {
	c.width = clampDim(width, c.width)
	c.height = clampDim(height, c.height)
}

// Size reports the render dimensions
func (c *Canvas) Size() (int, int) { return c.width, c.height }

func clampDim(v, current int) int {
	if v <= 0 {
		return current
	}
	if v > maxRenderDim {
		return maxRenderDim
	}
	return v
}

// XAt maps a row position to its x coordinate, clamped to the axis
func (c *Canvas) XAt(pos int) float64 {
	if len(c.xs) == 0 {
		return 0
	}
	if pos < 0 {
		pos = 0
	}
	if pos >= len(c.xs) {
		pos = len(c.xs) - 1
	}
	return c.xs[pos]
}

func (c *Canvas) xSpan() float64 {
	if len(c.xs) < 2 {
		return 1
	}
	span := c.xs[len(c.xs)-1] - c.xs[0]
	if span <= 0 {
		return 1
	}
	return span
}

// AddBand shades the vertical region between two row positions with a
// translucent fill. The band is a two-point series pinned to the top
// of the y range; with the range fixed the fill runs to the plot
// floor, which reads as a vertical stripe behind nothing and above
// the traces. A collapsed range widens to a thin visible stripe.
func (c *Canvas) AddBand(fromPos, toPos int, fill drawing.Color) {
	x0 := c.XAt(fromPos)
	x1 := c.XAt(toPos)
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if x1 == x0 {
		hair := c.xSpan() * 0.004
		x0 -= hair
		x1 += hair
	}
	c.series = append(c.series, chart.ContinuousSeries{
		XValues: []float64{x0, x1},
		YValues: []float64{c.yMax, c.yMax},
		Style: chart.Style{
			StrokeWidth: 1.0,
			StrokeColor: drawing.ColorTransparent,
			FillColor:   fill,
		},
	})
}

// AddMeanLine draws a horizontal line at y between two row positions
func (c *Canvas) AddMeanLine(fromPos, toPos int, y float64, color drawing.Color) {
	x0 := c.XAt(fromPos)
	x1 := c.XAt(toPos)
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if x1 == x0 {
		hair := c.xSpan() * 0.004
		x0 -= hair
		x1 += hair
	}
	c.series = append(c.series, chart.ContinuousSeries{
		XValues: []float64{x0, x1},
		YValues: []float64{y, y},
		Style: chart.Style{
			StrokeWidth: 2.0,
			StrokeColor: color,
		},
	})
}

// SeriesCount reports drawn series including overlays
func (c *Canvas) SeriesCount() int {
	return len(c.series)
}

// YRange reports the padded y axis bounds
func (c *Canvas) YRange() (float64, float64) {
	return c.yMin, c.yMax
}

// Render writes the chart in the requested format. The y range is
// pinned so bands keep their full-height reading, and the legend only
// lists waveform traces, never overlay series.
func (c *Canvas) Render(format Format, w io.Writer) error {
	ch := chart.Chart{
		Width:  c.width,
		Height: c.height,
		Background: chart.Style{
			Padding: chart.Box{Top: 16, Left: 12, Right: 12, Bottom: 24},
		},
		XAxis: chart.XAxis{
			Name:  c.xName,
			Ticks: c.ticks,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: c.yMin, Max: c.yMax},
			Ticks: niceTicks(c.yMin, c.yMax, 6),
		},
		Series: c.series,
	}
	legendSource := chart.Chart{Series: c.series[:c.nWave]}
	ch.Elements = []chart.Renderable{chart.Legend(&legendSource)}

	switch format {
	case PNG:
		return ch.Render(chart.PNG, w)
	default:
		return ch.Render(chart.SVG, w)
	}
}
