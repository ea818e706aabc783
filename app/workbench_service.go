package app

import (
	"context"
	"errors"
	"io"

	"wavescope/domain/core"
	"wavescope/domain/dataset"
	"wavescope/internal"
	"wavescope/internal/cursor"
	apperrors "wavescope/internal/errors"
	"wavescope/internal/frame"
	"wavescope/internal/plot"
	"wavescope/ports"
)

// WorkbenchRequest is one interaction snapshot from the workbench:
// the dataset to view, the load options, the waveform selection and
// the three cursor states. SelectedSet distinguishes a deliberate
// empty selection from a first paint, which defaults to all numeric
// columns.
type WorkbenchRequest struct {
	DatasetID   string
	SkipRows    int
	IndexColumn string
	Selected    []string
	SelectedSet bool
	Cursors     [cursor.Count]cursor.State
	ChartWidth  int
	ChartHeight int
}

// NewWorkbenchRequest returns a first-paint snapshot for a dataset:
// no rows skipped, positional index, default selection, all cursors
// disabled over the full span.
func NewWorkbenchRequest(datasetID string) WorkbenchRequest {
	req := WorkbenchRequest{DatasetID: datasetID}
	for i := range req.Cursors {
		req.Cursors[i] = cursor.DefaultState()
	}
	return req
}

// WorkbenchView is everything one render of the workbench needs. Load
// and chart failures surface as inline messages on the view rather
// than aborting it, so the page always comes back with its controls.
type WorkbenchView struct {
	Dataset         dataset.Summary
	SkipRows        int
	IndexColumn     string
	IndexOptions    []string
	WaveformOptions []string
	Selected        []string
	RowLabels       []string
	Cursors         [cursor.Count]*cursor.Cursor
	LoadError       string
	ChartError      string
	Table           [][]string
}

// HasFrame reports whether the dataset loaded into a usable table
func (v *WorkbenchView) HasFrame() bool { return v.LoadError == "" }

// HasChart reports whether the chart endpoint will render for this
// view's state.
func (v *WorkbenchView) HasChart() bool {
	return v.LoadError == "" && v.ChartError == ""
}

// WorkbenchService runs the viewer pipeline: load the stored dataset
// into a typed frame, apply the selection, build the three cursors in
// id order, and assemble the chart. Every interaction rebuilds the
// whole view from the posted snapshot.
type WorkbenchService struct {
	repo   ports.DatasetRepository
	logger *internal.Logger
}

// NewWorkbenchService creates a workbench service
func NewWorkbenchService(repo ports.DatasetRepository) *WorkbenchService {
	return &WorkbenchService{
		repo:   repo,
		logger: internal.DefaultLogger.Tagged("Workbench"),
	}
}

// BuildView assembles the full workbench view for one interaction
// snapshot.
func (s *WorkbenchService) BuildView(ctx context.Context, req WorkbenchRequest) (*WorkbenchView, error) {
	ds, f, err := s.assemble(ctx, req)
	if err != nil && apperrors.IsAppError(err) {
		return nil, err
	}

	view := &WorkbenchView{
		Dataset:  ds.Summarize(),
		SkipRows: req.SkipRows,
	}
	if err != nil {
		view.LoadError = err.Error()
		view.IndexColumn = req.IndexColumn
		return view, nil
	}

	view.IndexColumn = f.IndexColumn()
	view.IndexOptions = f.Columns()
	view.WaveformOptions = f.NumericColumns()
	view.Selected = s.effectiveSelection(f, req)
	view.RowLabels = f.IndexLabels()
	view.Table = f.Records()
	view.Cursors = cursor.BuildAll(f, view.Selected, req.Cursors)
	for _, c := range view.Cursors {
		// Selection errors are ordinary user states shown on the
		// panel; anything else on a cursor is worth a log line.
		if c.HasError() && !core.IsSelectionError(c.Err) {
			s.logger.Warn("Cursor %d aggregation failed: %v", c.ID, c.Err)
		}
	}

	if _, err := plot.Build(f, view.Selected); err != nil {
		view.ChartError = chartMessage(err)
		s.logger.Debug("Chart build failed for dataset %s: %v", req.DatasetID, err)
	}
	return view, nil
}

// RenderChart re-runs the pipeline for the same snapshot and writes
// the chart image. Cursors draw in id order so band stacking matches
// the panel order on the page.
func (s *WorkbenchService) RenderChart(ctx context.Context, req WorkbenchRequest, format plot.Format, w io.Writer) error {
	_, f, err := s.assemble(ctx, req)
	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		return apperrors.WithCode(apperrors.CodeChartBuild, err)
	}

	selected := s.effectiveSelection(f, req)
	canvas, err := plot.Build(f, selected)
	if err != nil {
		return apperrors.WithCode(chartCode(err), err)
	}
	canvas.SetSize(req.ChartWidth, req.ChartHeight)

	cursors := cursor.BuildAll(f, selected, req.Cursors)
	for i, c := range cursors {
		c.Draw(canvas, plot.BandColor(i))
	}
	return canvas.Render(format, w)
}

// assemble loads the dataset and builds its frame. Missing datasets
// and invalid ids fail with an AppError; frame build failures come
// back as plain errors so callers can surface them inline with the
// dataset summary still attached.
func (s *WorkbenchService) assemble(ctx context.Context, req WorkbenchRequest) (*dataset.Dataset, *frame.Frame, error) {
	did, err := core.ParseDatasetID(req.DatasetID)
	if err != nil {
		return nil, nil, apperrors.InvalidInput("invalid dataset id")
	}
	ds, err := s.repo.Get(ctx, did)
	if err != nil {
		return nil, nil, apperrors.DatasetNotFound(req.DatasetID)
	}

	opts := frame.Options{SkipRows: req.SkipRows, IndexColumn: req.IndexColumn}
	f, err := frame.Build(ds.Records, opts)
	if err != nil && errors.Is(err, core.ErrColumnNotFound) && req.IndexColumn != "" {
		// A stale index pick, usually after skip rows changed the
		// surviving columns. Fall back to the positional index.
		s.logger.Warn("Index column %q not in dataset %s, using positional index", req.IndexColumn, req.DatasetID)
		opts.IndexColumn = ""
		f, err = frame.Build(ds.Records, opts)
	}
	if err != nil {
		return ds, nil, err
	}
	return ds, f, nil
}

// effectiveSelection applies the all-numeric default on first paint
// and drops the index column from posted selections, which still
// carry it right after an index change.
func (s *WorkbenchService) effectiveSelection(f *frame.Frame, req WorkbenchRequest) []string {
	if !req.SelectedSet {
		return f.NumericColumns()
	}
	idx := f.IndexColumn()
	if idx == "" {
		return req.Selected
	}
	out := make([]string, 0, len(req.Selected))
	for _, name := range req.Selected {
		if name != idx {
			out = append(out, name)
		}
	}
	return out
}

func chartMessage(err error) string {
	if errors.Is(err, core.ErrChartBuild) {
		return core.ErrChartBuild.Error()
	}
	return err.Error()
}

// chartCode classifies a chart build failure. Selection failures keep
// their own codes so image requests report them apart from other
// unworkable chart states.
func chartCode(err error) string {
	if !core.IsSelectionError(err) {
		return apperrors.CodeChartBuild
	}
	if errors.Is(err, core.ErrEmptySelection) {
		return apperrors.CodeEmptySelection
	}
	return apperrors.CodeNonNumericSelection
}
