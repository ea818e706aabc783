package cursor

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"wavescope/domain/core"
	"wavescope/internal/frame"
	"wavescope/internal/plot"
)

// Count is the fixed number of cursors on the workbench
const Count = 3

// State is the interaction snapshot for one cursor as posted by the
// workbench form. Negative positions mean unset; Build widens them to
// the full row span.
type State struct {
	Enabled bool `json:"enabled"`
	MinPos  int  `json:"min_pos"`
	MaxPos  int  `json:"max_pos"`
}

// DefaultState is a disabled cursor spanning all rows
func DefaultState() State {
	return State{Enabled: false, MinPos: -1, MaxPos: -1}
}

// ColumnStats aggregates one selected column over the cursor range
type ColumnStats struct {
	Column string  `json:"column"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Cursor measures the selected waveforms over an inclusive row range.
// Each cursor copies the dataset frame, so cursors never share mutable
// state with the pipeline or with each other, and owns a fresh color
// cycle so overlay coloring restarts per cursor.
type Cursor struct {
	ID       int           `json:"id"`
	Enabled  bool          `json:"enabled"`
	MinPos   int           `json:"min_pos"`
	MaxPos   int           `json:"max_pos"`
	MinLabel string        `json:"min_label"`
	MaxLabel string        `json:"max_label"`
	Stats    []ColumnStats `json:"stats,omitempty"`
	Err      error         `json:"-"`

	frame *frame.Frame
	cycle *plot.ColorCycle
}

// Build creates cursor id from the interaction snapshot. Positions are
// resolved even for disabled cursors so the range controls keep their
// labels; aggregation only runs for enabled cursors. Aggregation
// failures land on Err, never abort the build.
func Build(id int, f *frame.Frame, selected []string, st State) *Cursor {
	fc := f.Copy()

	lo, hi := st.MinPos, st.MaxPos
	if lo < 0 {
		lo = 0
	}
	if hi < 0 {
		hi = fc.Nrow() - 1
	}
	lo, hi = fc.ClampPositions(lo, hi)

	// The posted positions stand for index labels. Widen to the first
	// row matching the min label and the last row matching the max
	// label, so duplicate labels land inside the slice.
	labels := fc.IndexLabels()
	if len(labels) > 0 {
		if wlo, whi, err := fc.ResolveRange(labels[lo], labels[hi]); err == nil {
			lo, hi = wlo, whi
		}
	}

	c := &Cursor{
		ID:      id,
		Enabled: st.Enabled,
		MinPos:  lo,
		MaxPos:  hi,
		frame:   fc,
		cycle:   plot.NewColorCycle(plot.MeanLinePalette),
	}
	if lo >= 0 && lo < len(labels) {
		c.MinLabel = labels[lo]
	}
	if hi >= 0 && hi < len(labels) {
		c.MaxLabel = labels[hi]
	}

	if !c.Enabled || fc.Nrow() == 0 {
		return c
	}

	measured, err := c.aggregate(selected)
	if err != nil {
		c.Err = err
		return c
	}
	c.Stats = measured
	return c
}

// aggregate computes mean, sample std, min and max for every selected
// column over rows [MinPos, MaxPos]. The whole selection is validated
// before any column is measured, so a cursor never reports partial
// stats.
func (c *Cursor) aggregate(selected []string) ([]ColumnStats, error) {
	if len(selected) == 0 {
		return nil, core.ErrEmptySelection
	}
	for _, name := range selected {
		if !c.frame.HasColumn(name) {
			return nil, fmt.Errorf("%w: %s", core.ErrColumnNotFound, name)
		}
		if !c.frame.IsNumeric(name) {
			return nil, core.ErrNonNumericSelection
		}
	}

	out := make([]ColumnStats, 0, len(selected))
	for _, name := range selected {
		vals, err := c.frame.ColumnFloats(name)
		if err != nil {
			return nil, err
		}
		out = append(out, columnStats(name, vals[c.MinPos:c.MaxPos+1]))
	}
	return out, nil
}

func columnStats(name string, window []float64) ColumnStats {
	mean, _ := stats.Mean(window)
	min, _ := stats.Min(window)
	max, _ := stats.Max(window)
	// Sample std matches the one-row-window convention of reporting
	// NaN rather than zero spread.
	std := math.NaN()
	if len(window) > 1 {
		std, _ = stats.StandardDeviationSample(window)
	}
	return ColumnStats{Column: name, Mean: mean, Std: std, Min: min, Max: max}
}

// Draw overlays the cursor on the canvas: the shaded band always, one
// mean line per measured column. Disabled cursors draw nothing. The
// color cycle advances once per mean line.
func (c *Cursor) Draw(cv *plot.Canvas, fill drawing.Color) {
	if !c.Enabled {
		return
	}
	cv.AddBand(c.MinPos, c.MaxPos, fill)
	for _, cs := range c.Stats {
		cv.AddMeanLine(c.MinPos, c.MaxPos, cs.Mean, c.cycle.Next())
	}
}

// HasError reports whether aggregation failed for this cursor
func (c *Cursor) HasError() bool { return c.Err != nil }

// ErrorMessage returns the inline message for a failed aggregation
func (c *Cursor) ErrorMessage() string {
	if c.Err == nil {
		return ""
	}
	return c.Err.Error()
}

// RowCount reports how many rows the cursor range covers
func (c *Cursor) RowCount() int {
	if c.frame == nil || c.frame.Nrow() == 0 {
		return 0
	}
	return c.MaxPos - c.MinPos + 1
}

// BuildAll constructs the fixed cursor set in id order. Display ids
// are 1-based; band colors index by position, so callers fill cursor
// i with plot.BandColor(i).
func BuildAll(f *frame.Frame, selected []string, states [Count]State) [Count]*Cursor {
	var out [Count]*Cursor
	for i := 0; i < Count; i++ {
		out[i] = Build(i+1, f, selected, states[i])
	}
	return out
}
