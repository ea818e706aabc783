package testkit

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"strconv"
)

// WaveformConfig configures the synthetic waveform generator
type WaveformConfig struct {
	Rows         int     `json:"rows"`
	SampleStep   float64 `json:"sample_step"`
	SineAmp      float64 `json:"sine_amp"`
	SineFreq     float64 `json:"sine_freq"`
	RampSlope    float64 `json:"ramp_slope"`
	NoiseAmp     float64 `json:"noise_amp"`
	LabelColumn  bool    `json:"label_column"`
	MissingEvery int     `json:"missing_every"`
	Seed         int64   `json:"seed"`
}

// DefaultWaveformConfig returns sensible defaults for waveform generation
func DefaultWaveformConfig() WaveformConfig {
	return WaveformConfig{
		Rows:       240,
		SampleStep: 0.05,
		SineAmp:    10,
		SineFreq:   0.5,
		RampSlope:  2.5,
		NoiseAmp:   1.5,
		Seed:       42,
	}
}

// WaveformGenerator produces deterministic synthetic waveform tables:
// a time index plus sine, ramp, square and noise channels. The same
// seed always yields the same table, which keeps fixtures stable.
type WaveformGenerator struct {
	config WaveformConfig
	rng    *rand.Rand
}

// NewWaveformGenerator creates a generator for the given config
func NewWaveformGenerator(config WaveformConfig) *WaveformGenerator {
	return &WaveformGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Records returns the generated table, header row first. With
// MissingEvery set, every k-th noise cell is blanked to exercise the
// missing-value cleanup path. With LabelColumn set, a text column is
// appended to exercise non-numeric handling.
func (g *WaveformGenerator) Records() [][]string {
	header := []string{"t", "sine", "ramp", "square", "noise"}
	if g.config.LabelColumn {
		header = append(header, "phase")
	}

	out := make([][]string, 0, g.config.Rows+1)
	out = append(out, header)
	for i := 0; i < g.config.Rows; i++ {
		t := float64(i) * g.config.SampleStep
		phase := math.Sin(2 * math.Pi * g.config.SineFreq * t)
		sine := g.config.SineAmp * phase
		ramp := g.config.RampSlope * t
		square := g.config.SineAmp
		if phase < 0 {
			square = -square
		}
		noise := g.rng.NormFloat64() * g.config.NoiseAmp

		row := []string{
			formatValue(t),
			formatValue(sine),
			formatValue(ramp),
			formatValue(square),
			formatValue(noise),
		}
		if g.config.MissingEvery > 0 && (i+1)%g.config.MissingEvery == 0 {
			row[4] = ""
		}
		if g.config.LabelColumn {
			label := "low"
			if phase >= 0 {
				label = "high"
			}
			row = append(row, label)
		}
		out = append(out, row)
	}
	return out
}

// CSV renders the generated table as CSV bytes
func (g *WaveformGenerator) CSV() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.WriteAll(g.Records())
	w.Flush()
	return buf.Bytes()
}

// CSVWithPreamble prepends junk comment lines before the header, for
// skip-rows fixtures.
func (g *WaveformGenerator) CSVWithPreamble(lines int) []byte {
	var buf bytes.Buffer
	for i := 0; i < lines; i++ {
		fmt.Fprintf(&buf, "# generated waveform fixture line %d\n", i+1)
	}
	buf.Write(g.CSV())
	return buf.Bytes()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
