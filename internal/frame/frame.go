package frame

import (
	"fmt"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"wavescope/domain/core"
)

// Options control how raw records become a frame
type Options struct {
	// SkipRows drops this many raw rows before the header row is read
	SkipRows int
	// IndexColumn names the column whose values become the row index;
	// empty keeps the default integer sequence
	IndexColumn string
}

// Frame is the cleaned, typed view of a dataset built per interaction:
// raw rows past the skip count, types detected per column, any column
// containing a missing value dropped entirely, optionally indexed by a
// chosen column. After cleaning no column contains missing values.
type Frame struct {
	df          dataframe.DataFrame
	indexColumn string
	indexLabels []string
}

// ColumnInfo describes one column for control panels and CLI listings
type ColumnInfo struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Numeric bool   `json:"numeric"`
}

// Tokens treated as missing values during load. Empty cells count, so a
// column with any blank entry is dropped like the rest.
var nanTokens = []string{"", "NA", "NaN", "nan", "null", "NULL", "<nil>"}

// Build constructs a frame from raw records
func Build(records [][]string, opts Options) (*Frame, error) {
	if opts.SkipRows < 0 {
		return nil, fmt.Errorf("skip rows must be non-negative, got %d", opts.SkipRows)
	}
	if opts.SkipRows >= len(records) {
		return nil, fmt.Errorf("%w: skipping %d rows leaves nothing to read", core.ErrEmptyDataset, opts.SkipRows)
	}

	remaining := records[opts.SkipRows:]
	if len(remaining) < 2 {
		return nil, fmt.Errorf("%w: header row only after skipping %d rows", core.ErrEmptyDataset, opts.SkipRows)
	}

	df := dataframe.LoadRecords(
		remaining,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nanTokens),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to load records: %w", df.Err)
	}

	kept := make([]string, 0, df.Ncol())
	for _, name := range df.Names() {
		if !df.Col(name).HasNaN() {
			kept = append(kept, name)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: every column contains missing values", core.ErrEmptyDataset)
	}
	if len(kept) < df.Ncol() {
		df = df.Select(kept)
		if df.Err != nil {
			return nil, fmt.Errorf("failed to drop incomplete columns: %w", df.Err)
		}
	}

	f := &Frame{df: df}
	f.indexLabels = defaultLabels(df.Nrow())

	if opts.IndexColumn != "" {
		return f.WithIndex(opts.IndexColumn)
	}
	return f, nil
}

// WithIndex returns a view of the frame indexed by the named column
func (f *Frame) WithIndex(name string) (*Frame, error) {
	if name == "" {
		nf := *f
		nf.indexColumn = ""
		nf.indexLabels = defaultLabels(f.df.Nrow())
		return &nf, nil
	}
	if !f.HasColumn(name) {
		return nil, fmt.Errorf("%w: %s", core.ErrColumnNotFound, name)
	}
	nf := *f
	nf.indexColumn = name
	nf.indexLabels = f.columnStrings(name)
	return &nf, nil
}

// Copy returns an independent copy of the frame
func (f *Frame) Copy() *Frame {
	labels := make([]string, len(f.indexLabels))
	copy(labels, f.indexLabels)
	return &Frame{
		df:          f.df.Copy(),
		indexColumn: f.indexColumn,
		indexLabels: labels,
	}
}

// Nrow returns the number of data rows
func (f *Frame) Nrow() int { return f.df.Nrow() }

// Ncol returns the number of columns after cleaning
func (f *Frame) Ncol() int { return f.df.Ncol() }

// Columns returns all column names in file order
func (f *Frame) Columns() []string { return f.df.Names() }

// HasColumn reports whether the named column survived cleaning
func (f *Frame) HasColumn(name string) bool {
	for _, n := range f.df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// IsNumeric reports whether the named column aggregates as numbers
func (f *Frame) IsNumeric(name string) bool {
	if !f.HasColumn(name) {
		return false
	}
	switch f.df.Col(name).Type() {
	case series.Int, series.Float:
		return true
	}
	return false
}

// NumericColumns returns the waveform candidates in file order: numeric
// columns minus the index column when that column is numeric
func (f *Frame) NumericColumns() []string {
	out := make([]string, 0, f.df.Ncol())
	for _, name := range f.df.Names() {
		if name == f.indexColumn {
			continue
		}
		if f.IsNumeric(name) {
			out = append(out, name)
		}
	}
	return out
}

// ColumnInfos lists every column with its detected type
func (f *Frame) ColumnInfos() []ColumnInfo {
	names := f.df.Names()
	types := f.df.Types()
	infos := make([]ColumnInfo, len(names))
	for i, name := range names {
		infos[i] = ColumnInfo{
			Name:    name,
			Type:    string(types[i]),
			Numeric: types[i] == series.Int || types[i] == series.Float,
		}
	}
	return infos
}

// ColumnFloats extracts a column as float64 values. Non-numeric entries
// come back as NaN per the underlying series conversion.
func (f *Frame) ColumnFloats(name string) ([]float64, error) {
	if !f.HasColumn(name) {
		return nil, fmt.Errorf("%w: %s", core.ErrColumnNotFound, name)
	}
	return f.df.Col(name).Float(), nil
}

// IndexColumn returns the chosen index column name, empty for the
// default integer sequence
func (f *Frame) IndexColumn() string { return f.indexColumn }

// IndexLabels returns the row index values in row order
func (f *Frame) IndexLabels() []string { return f.indexLabels }

// IndexFloats returns the index as x coordinates. ok is false when the
// index is not numeric; callers then chart against row positions.
func (f *Frame) IndexFloats() ([]float64, bool) {
	if f.indexColumn == "" {
		xs := make([]float64, f.df.Nrow())
		for i := range xs {
			xs[i] = float64(i)
		}
		return xs, true
	}
	if !f.IsNumeric(f.indexColumn) {
		return nil, false
	}
	return f.df.Col(f.indexColumn).Float(), true
}

// ClampPositions normalizes a positional range to the frame's rows:
// bounds are clamped and a reversed pair is swapped
func (f *Frame) ClampPositions(lo, hi int) (int, int) {
	n := f.df.Nrow()
	if n == 0 {
		return 0, 0
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}
	if lo > n-1 {
		lo = n - 1
	}
	if hi < 0 {
		hi = 0
	}
	return lo, hi
}

// ResolveRange maps index label values to row positions: the first row
// matching the min label through the last row matching the max label.
// Numeric labels compare by value so "1" finds "1.0".
func (f *Frame) ResolveRange(minLabel, maxLabel string) (int, int, error) {
	lo := f.firstMatch(minLabel)
	hi := f.lastMatch(maxLabel)
	if lo < 0 || hi < 0 {
		return 0, 0, fmt.Errorf("%w: [%s, %s]", core.ErrRangeOutOfBounds, minLabel, maxLabel)
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, nil
}

// Records returns the cleaned table as strings, header row first.
// Float cells render with minimal digits instead of the six-decimal
// default so tables and slider labels read like the source file.
func (f *Frame) Records() [][]string {
	names := f.df.Names()
	cols := make([][]string, len(names))
	for i, name := range names {
		cols[i] = f.columnStrings(name)
	}

	out := make([][]string, 0, f.df.Nrow()+1)
	header := make([]string, len(names))
	copy(header, names)
	out = append(out, header)
	for r := 0; r < f.df.Nrow(); r++ {
		row := make([]string, len(names))
		for c := range names {
			row[c] = cols[c][r]
		}
		out = append(out, row)
	}
	return out
}

func (f *Frame) columnStrings(name string) []string {
	s := f.df.Col(name)
	if s.Type() == series.Float {
		vals := s.Float()
		out := make([]string, len(vals))
		for i, v := range vals {
			out[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		return out
	}
	return s.Records()
}

func (f *Frame) firstMatch(label string) int {
	want, wantNum := parseFloat(label)
	for i, l := range f.indexLabels {
		if l == label {
			return i
		}
		if wantNum {
			if v, ok := parseFloat(l); ok && v == want {
				return i
			}
		}
	}
	return -1
}

func (f *Frame) lastMatch(label string) int {
	want, wantNum := parseFloat(label)
	for i := len(f.indexLabels) - 1; i >= 0; i-- {
		l := f.indexLabels[i]
		if l == label {
			return i
		}
		if wantNum {
			if v, ok := parseFloat(l); ok && v == want {
				return i
			}
		}
	}
	return -1
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

func defaultLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}
	return labels
}
