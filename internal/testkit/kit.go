package testkit

import (
	"wavescope/domain/core"
	"wavescope/domain/dataset"
)

// Kit bundles the fixtures used to exercise the pipeline end to end.
// The default kit carries the standard deterministic waveform table;
// the dev harness and the demo dataset both build on it.
type Kit struct {
	gen *WaveformGenerator
}

// NewKit creates a kit with the default waveform config
func NewKit() *Kit {
	return NewKitWithConfig(DefaultWaveformConfig())
}

// NewKitWithConfig creates a kit generating from the given config
func NewKitWithConfig(config WaveformConfig) *Kit {
	return &Kit{gen: NewWaveformGenerator(config)}
}

// Generator exposes the underlying waveform generator
func (k *Kit) Generator() *WaveformGenerator {
	return k.gen
}

// Records returns the fixture table, header first
func (k *Kit) Records() [][]string {
	return k.gen.Records()
}

// CSV returns the fixture table as CSV bytes
func (k *Kit) CSV() []byte {
	return k.gen.CSV()
}

// Dataset wraps the fixture table as a stored dataset, the same shape
// an upload would produce.
func (k *Kit) Dataset(name string) *dataset.Dataset {
	raw := k.gen.CSV()
	return &dataset.Dataset{
		ID:               core.NewDatasetID(),
		OriginalFilename: name,
		Kind:             dataset.KindCSV,
		FileSize:         int64(len(raw)),
		Checksum:         core.NewChecksum(raw),
		Records:          k.gen.Records(),
		UploadedAt:       core.Now(),
	}
}
