package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wavescope/domain/core"
)

func records(rows ...[]string) [][]string {
	return rows
}

func TestBuildDetectsTypes(t *testing.T) {
	recs := records(
		[]string{"t", "v", "label"},
		[]string{"0", "10.5", "a"},
		[]string{"1", "20.5", "b"},
		[]string{"2", "30.5", "c"},
	)

	f, err := Build(recs, Options{})
	require.NoError(t, err)

	assert.Equal(t, 3, f.Nrow())
	assert.Equal(t, 3, f.Ncol())
	assert.Equal(t, []string{"t", "v", "label"}, f.Columns())
	assert.Equal(t, []string{"t", "v"}, f.NumericColumns())
	assert.Equal(t, []string{"0", "1", "2"}, f.IndexLabels())

	assert.True(t, f.IsNumeric("v"))
	assert.False(t, f.IsNumeric("label"))
	assert.False(t, f.IsNumeric("missing"))
}

func TestBuildSkipRows(t *testing.T) {
	recs := records(
		[]string{"junk preamble", ""},
		[]string{"more junk", ""},
		[]string{"t", "v"},
		[]string{"0", "10"},
		[]string{"1", "20"},
	)

	f, err := Build(recs, Options{SkipRows: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"t", "v"}, f.Columns())
	assert.Equal(t, 2, f.Nrow())

	vs, err := f.ColumnFloats("v")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20}, vs)
}

func TestBuildSkipRowsExhaustsData(t *testing.T) {
	recs := records(
		[]string{"t", "v"},
		[]string{"0", "10"},
	)

	_, err := Build(recs, Options{SkipRows: 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrEmptyDataset)

	_, err = Build(recs, Options{SkipRows: -1})
	assert.Error(t, err)
}

func TestBuildDropsColumnsWithMissingValues(t *testing.T) {
	recs := records(
		[]string{"t", "v", "partial", "tagged"},
		[]string{"0", "10", "", "5"},
		[]string{"1", "20", "7", "NA"},
		[]string{"2", "30", "8", "6"},
	)

	f, err := Build(recs, Options{})
	require.NoError(t, err)

	// partial has an empty cell, tagged has an NA token
	assert.Equal(t, []string{"t", "v"}, f.Columns())
	assert.False(t, f.HasColumn("partial"))
	assert.False(t, f.HasColumn("tagged"))
}

func TestBuildAllColumnsMissing(t *testing.T) {
	recs := records(
		[]string{"a", "b"},
		[]string{"", "1"},
		[]string{"2", ""},
	)

	_, err := Build(recs, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrEmptyDataset)
}

func TestWithIndex(t *testing.T) {
	recs := records(
		[]string{"t", "v", "label"},
		[]string{"0", "10", "a"},
		[]string{"1", "20", "b"},
		[]string{"2", "30", "c"},
	)

	f, err := Build(recs, Options{IndexColumn: "t"})
	require.NoError(t, err)

	assert.Equal(t, "t", f.IndexColumn())
	assert.Equal(t, []string{"0", "1", "2"}, f.IndexLabels())
	// The numeric index column is excluded from waveform candidates
	assert.Equal(t, []string{"v"}, f.NumericColumns())

	xs, ok := f.IndexFloats()
	assert.True(t, ok)
	assert.Equal(t, []float64{0, 1, 2}, xs)

	// A non-numeric index keeps every numeric column selectable
	g, err := f.WithIndex("label")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, g.IndexLabels())
	assert.Equal(t, []string{"t", "v"}, g.NumericColumns())
	_, ok = g.IndexFloats()
	assert.False(t, ok)

	_, err = f.WithIndex("absent")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrColumnNotFound)
}

func TestResolveRange(t *testing.T) {
	recs := records(
		[]string{"t", "v"},
		[]string{"0", "10"},
		[]string{"1", "20"},
		[]string{"1", "25"},
		[]string{"2", "30"},
		[]string{"3", "40"},
	)

	f, err := Build(recs, Options{IndexColumn: "t"})
	require.NoError(t, err)

	lo, hi, err := f.ResolveRange("1", "2")
	require.NoError(t, err)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 3, hi)

	// Duplicate labels span first occurrence through last occurrence
	lo, hi, err = f.ResolveRange("1", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 2, hi)

	// Numeric labels match by value
	lo, hi, err = f.ResolveRange("1.0", "3.0")
	require.NoError(t, err)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 4, hi)

	// Reversed bounds swap
	lo, hi, err = f.ResolveRange("3", "0")
	require.NoError(t, err)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 4, hi)

	_, _, err = f.ResolveRange("0", "99")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrRangeOutOfBounds)
}

func TestClampPositions(t *testing.T) {
	recs := records(
		[]string{"t", "v"},
		[]string{"0", "10"},
		[]string{"1", "20"},
		[]string{"2", "30"},
	)
	f, err := Build(recs, Options{})
	require.NoError(t, err)

	lo, hi := f.ClampPositions(-5, 99)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 2, hi)

	lo, hi = f.ClampPositions(2, 1)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 2, hi)
}

func TestRecordsRoundTrip(t *testing.T) {
	recs := records(
		[]string{"t", "v"},
		[]string{"0", "10"},
		[]string{"1", "20"},
	)
	f, err := Build(recs, Options{})
	require.NoError(t, err)

	out := f.Records()
	require.Len(t, out, 3)
	assert.Equal(t, []string{"t", "v"}, out[0])
}

func TestFloatLabelsRenderMinimalDigits(t *testing.T) {
	recs := records(
		[]string{"t", "v"},
		[]string{"0.5", "10"},
		[]string{"1.25", "20"},
	)

	f, err := Build(recs, Options{IndexColumn: "t"})
	require.NoError(t, err)
	assert.Equal(t, []string{"0.5", "1.25"}, f.IndexLabels())

	out := f.Records()
	require.Len(t, out, 3)
	assert.Equal(t, "0.5", out[1][0])
}

func TestColumnFloatsMissingColumn(t *testing.T) {
	f, err := Build(records(
		[]string{"t", "v"},
		[]string{"0", "10"},
	), Options{})
	require.NoError(t, err)

	_, err = f.ColumnFloats("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrColumnNotFound)
}

func TestCopyIsIndependent(t *testing.T) {
	recs := records(
		[]string{"t", "v"},
		[]string{"0", "10"},
		[]string{"1", "20"},
	)
	f, err := Build(recs, Options{})
	require.NoError(t, err)

	c := f.Copy()
	assert.Equal(t, f.Nrow(), c.Nrow())
	assert.Equal(t, f.Columns(), c.Columns())
	c.indexLabels[0] = "mutated"
	assert.Equal(t, "0", f.IndexLabels()[0])
}
