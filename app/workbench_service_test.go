package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wavescope/adapters/memstore"
	"wavescope/domain/dataset"
	"wavescope/internal/cursor"
	apperrors "wavescope/internal/errors"
	"wavescope/internal/plot"
	"wavescope/internal/testkit"
)

func seedWorkbench(t *testing.T) (*WorkbenchService, *dataset.Dataset) {
	t.Helper()
	repo := memstore.New(memstore.DefaultConfig())
	ds := testkit.NewKit().Dataset("waves.csv")
	require.NoError(t, repo.Put(context.Background(), ds))
	return NewWorkbenchService(repo), ds
}

func TestBuildViewFirstPaint(t *testing.T) {
	svc, ds := seedWorkbench(t)

	view, err := svc.BuildView(context.Background(), NewWorkbenchRequest(ds.ID.String()))
	require.NoError(t, err)

	assert.True(t, view.HasFrame())
	assert.True(t, view.HasChart())
	assert.Equal(t, "waves.csv", view.Dataset.Name)
	assert.Equal(t, "", view.IndexColumn)
	assert.Equal(t, []string{"t", "sine", "ramp", "square", "noise"}, view.IndexOptions)
	assert.Equal(t, []string{"t", "sine", "ramp", "square", "noise"}, view.WaveformOptions)
	assert.Equal(t, view.WaveformOptions, view.Selected)
	assert.Len(t, view.RowLabels, 240)
	assert.Len(t, view.Table, 241)

	for i, c := range view.Cursors {
		assert.Equal(t, i+1, c.ID)
		assert.False(t, c.Enabled)
		assert.Nil(t, c.Stats)
	}
}

func TestBuildViewWithIndexAndCursor(t *testing.T) {
	svc, ds := seedWorkbench(t)

	req := NewWorkbenchRequest(ds.ID.String())
	req.IndexColumn = "t"
	req.Cursors[0] = cursor.State{Enabled: true, MinPos: 10, MaxPos: 20}

	view, err := svc.BuildView(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "t", view.IndexColumn)
	assert.Equal(t, []string{"sine", "ramp", "square", "noise"}, view.WaveformOptions)
	assert.Equal(t, view.WaveformOptions, view.Selected)

	c := view.Cursors[0]
	require.NoError(t, c.Err)
	require.Len(t, c.Stats, 4)
	assert.Equal(t, "0.5", c.MinLabel)
	assert.Equal(t, "1", c.MaxLabel)
	assert.Equal(t, 11, c.RowCount())
}

func TestBuildViewDropsIndexFromSelection(t *testing.T) {
	svc, ds := seedWorkbench(t)

	// The posted selection still carries "t" right after it became the
	// index; the view must not chart or aggregate the index column.
	req := NewWorkbenchRequest(ds.ID.String())
	req.IndexColumn = "t"
	req.SelectedSet = true
	req.Selected = []string{"t", "sine"}
	req.Cursors[0] = cursor.State{Enabled: true, MinPos: -1, MaxPos: -1}

	view, err := svc.BuildView(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []string{"sine"}, view.Selected)
	assert.True(t, view.HasChart())

	c := view.Cursors[0]
	require.NoError(t, c.Err)
	require.Len(t, c.Stats, 1)
	assert.Equal(t, "sine", c.Stats[0].Column)
}

func TestBuildViewEmptySelection(t *testing.T) {
	svc, ds := seedWorkbench(t)

	req := NewWorkbenchRequest(ds.ID.String())
	req.SelectedSet = true
	req.Cursors[1] = cursor.State{Enabled: true, MinPos: -1, MaxPos: -1}

	view, err := svc.BuildView(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "cannot draw current waveforms", view.ChartError)
	assert.False(t, view.HasChart())
	assert.Equal(t, "select a waveform", view.Cursors[1].ErrorMessage())
	assert.NoError(t, view.Cursors[0].Err)
}

func TestBuildViewStaleIndexFallsBack(t *testing.T) {
	svc, ds := seedWorkbench(t)

	req := NewWorkbenchRequest(ds.ID.String())
	req.IndexColumn = "bogus"

	view, err := svc.BuildView(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, view.HasFrame())
	assert.Equal(t, "", view.IndexColumn)
}

func TestBuildViewSkipRowsBeyondData(t *testing.T) {
	svc, ds := seedWorkbench(t)

	req := NewWorkbenchRequest(ds.ID.String())
	req.SkipRows = 100000

	view, err := svc.BuildView(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, view.HasFrame())
	assert.False(t, view.HasChart())
	assert.NotEmpty(t, view.LoadError)
	assert.Equal(t, "waves.csv", view.Dataset.Name)
}

func TestBuildViewMissingDataset(t *testing.T) {
	svc, _ := seedWorkbench(t)

	_, err := svc.BuildView(context.Background(), NewWorkbenchRequest("no-such-id"))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeDatasetNotFound, apperrors.GetCode(err))
}

func TestRenderChartSVG(t *testing.T) {
	svc, ds := seedWorkbench(t)

	req := NewWorkbenchRequest(ds.ID.String())
	req.IndexColumn = "t"
	req.Cursors[0] = cursor.State{Enabled: true, MinPos: 50, MaxPos: 150}

	var buf bytes.Buffer
	require.NoError(t, svc.RenderChart(context.Background(), req, plot.SVG, &buf))
	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "sine")
}

func TestRenderChartEmptySelectionFails(t *testing.T) {
	svc, ds := seedWorkbench(t)

	req := NewWorkbenchRequest(ds.ID.String())
	req.SelectedSet = true

	var buf bytes.Buffer
	err := svc.RenderChart(context.Background(), req, plot.SVG, &buf)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeEmptySelection, apperrors.GetCode(err))
}

func TestRenderChartNonNumericSelectionFails(t *testing.T) {
	repo := memstore.New(memstore.DefaultConfig())
	cfg := testkit.DefaultWaveformConfig()
	cfg.LabelColumn = true
	ds := testkit.NewKitWithConfig(cfg).Dataset("waves.csv")
	require.NoError(t, repo.Put(context.Background(), ds))
	svc := NewWorkbenchService(repo)

	req := NewWorkbenchRequest(ds.ID.String())
	req.SelectedSet = true
	req.Selected = []string{"phase"}

	var buf bytes.Buffer
	err := svc.RenderChart(context.Background(), req, plot.SVG, &buf)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNonNumericSelection, apperrors.GetCode(err))
}
