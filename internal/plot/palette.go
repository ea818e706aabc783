package plot

import (
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// WaveformPalette colors the chart traces, one color per selected
// column in selection order, wrapping when columns exceed it.
var WaveformPalette = []drawing.Color{
	drawing.ColorFromHex("636EFA"),
	drawing.ColorFromHex("EF553B"),
	drawing.ColorFromHex("00CC96"),
	drawing.ColorFromHex("AB63FA"),
	drawing.ColorFromHex("FFA15A"),
	drawing.ColorFromHex("19D3F3"),
	drawing.ColorFromHex("FF6692"),
	drawing.ColorFromHex("B6E880"),
	drawing.ColorFromHex("FF97FF"),
	drawing.ColorFromHex("FECB52"),
}

// MeanLinePalette colors per-cursor mean lines. It carries the same
// values as the waveform palette but stays a separate constant so the
// two stylings can diverge independently.
var MeanLinePalette = []drawing.Color{
	drawing.ColorFromHex("636EFA"),
	drawing.ColorFromHex("EF553B"),
	drawing.ColorFromHex("00CC96"),
	drawing.ColorFromHex("AB63FA"),
	drawing.ColorFromHex("FFA15A"),
	drawing.ColorFromHex("19D3F3"),
	drawing.ColorFromHex("FF6692"),
	drawing.ColorFromHex("B6E880"),
	drawing.ColorFromHex("FF97FF"),
	drawing.ColorFromHex("FECB52"),
}

// BandPalette shades cursor regions, indexed by cursor position so the
// three bands stay distinguishable from each other and from traces.
var BandPalette = []drawing.Color{
	drawing.ColorFromHex("FBB4AE"),
	drawing.ColorFromHex("B3CDE3"),
	drawing.ColorFromHex("CCEBC5"),
	drawing.ColorFromHex("DECBE4"),
	drawing.ColorFromHex("FED9A6"),
	drawing.ColorFromHex("FFFFCC"),
	drawing.ColorFromHex("E5D8BD"),
	drawing.ColorFromHex("FDDAEC"),
	drawing.ColorFromHex("F2F2F2"),
}

// BandAlpha renders bands at half opacity
const BandAlpha uint8 = 127

// BandColor returns the shaded band fill for the i-th cursor
func BandColor(i int) drawing.Color {
	return BandPalette[i%len(BandPalette)].WithAlpha(BandAlpha)
}

// ColorCycle hands out palette colors in order, wrapping at the end.
// Every cursor owns its own cycle, so overlay coloring restarts per
// cursor and advances once per drawn line.
type ColorCycle struct {
	palette []drawing.Color
	next    int
}

// NewColorCycle starts a cycle at the first palette color
func NewColorCycle(palette []drawing.Color) *ColorCycle {
	return &ColorCycle{palette: palette}
}

// Next returns the current color and advances the cycle
func (c *ColorCycle) Next() drawing.Color {
	if len(c.palette) == 0 {
		return drawing.ColorBlack
	}
	color := c.palette[c.next%len(c.palette)]
	c.next++
	return color
}

// Reset rewinds the cycle to the first color
func (c *ColorCycle) Reset() {
	c.next = 0
}

// Taken reports how many colors the cycle has handed out
func (c *ColorCycle) Taken() int {
	return c.next
}
