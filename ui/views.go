package ui

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"wavescope/app"
	"wavescope/domain/dataset"
	"wavescope/internal/cursor"
)

// maxTableRows caps the raw data table render; the full row count is
// still reported next to it.
const maxTableRows = 500

// rowOption is one entry of a cursor range select
type rowOption struct {
	Pos   int
	Label string
}

// cursorPanel pairs a built cursor with the row options its range
// selects render from.
type cursorPanel struct {
	Cursor     *cursor.Cursor
	RowOptions []rowOption
}

// workbenchPage is the template model for one workbench render
type workbenchPage struct {
	*app.WorkbenchView
	DatasetID   string
	ChartQuery  string
	TableHeader []string
	TableRows   [][]string
	TableTotal  int
	Truncated   bool
	rowOptions  []rowOption
	selected    map[string]bool
}

// indexPage is the template model for the landing page
type indexPage struct {
	Title     string
	Summaries []dataset.Summary
	Workbench *workbenchPage
	Alert     string
}

// newWorkbenchPage wraps a view for rendering. The chart query is
// rebuilt from the view's canonical state, so the image request always
// matches what the page shows.
func newWorkbenchPage(view *app.WorkbenchView, req app.WorkbenchRequest) *workbenchPage {
	page := &workbenchPage{
		WorkbenchView: view,
		DatasetID:     req.DatasetID,
	}

	page.selected = make(map[string]bool, len(view.Selected))
	for _, name := range view.Selected {
		page.selected[name] = true
	}

	page.rowOptions = make([]rowOption, len(view.RowLabels))
	for i, label := range view.RowLabels {
		page.rowOptions[i] = rowOption{Pos: i, Label: label}
	}

	if len(view.Table) > 0 {
		page.TableHeader = view.Table[0]
		rows := view.Table[1:]
		page.TableTotal = len(rows)
		if len(rows) > maxTableRows {
			rows = rows[:maxTableRows]
			page.Truncated = true
		}
		page.TableRows = rows
	}

	page.ChartQuery = chartQuery(canonicalRequest(view, req))
	return page
}

// IsSelected reports whether a waveform is in the current selection
func (p *workbenchPage) IsSelected(name string) bool {
	return p.selected[name]
}

// CursorPanels pairs each cursor with the shared row options
func (p *workbenchPage) CursorPanels() []cursorPanel {
	panels := make([]cursorPanel, 0, cursor.Count)
	for _, c := range p.Cursors {
		if c == nil {
			continue
		}
		panels = append(panels, cursorPanel{Cursor: c, RowOptions: p.rowOptions})
	}
	return panels
}

// parseWorkbenchRequest decodes the posted workbench form into an
// interaction snapshot. Absent cursor fields leave the defaults, so a
// disabled cursor whose selects did not submit falls back to the full
// span.
func parseWorkbenchRequest(r *http.Request) app.WorkbenchRequest {
	_ = r.ParseForm()

	req := app.NewWorkbenchRequest(r.FormValue("dataset"))
	if v, err := strconv.Atoi(r.FormValue("skip_rows")); err == nil && v >= 0 {
		req.SkipRows = v
	}
	req.IndexColumn = r.FormValue("index")
	if r.FormValue("waveforms_set") != "" {
		req.SelectedSet = true
		req.Selected = r.Form["waveforms"]
	}

	for i := 0; i < cursor.Count; i++ {
		id := i + 1
		st := cursor.DefaultState()
		st.Enabled = r.FormValue(fmt.Sprintf("cursor_%d_enable", id)) != ""
		if v, err := strconv.Atoi(r.FormValue(fmt.Sprintf("cursor_%d_min", id))); err == nil {
			st.MinPos = v
		}
		if v, err := strconv.Atoi(r.FormValue(fmt.Sprintf("cursor_%d_max", id))); err == nil {
			st.MaxPos = v
		}
		req.Cursors[i] = st
	}
	return req
}

// parseChartRequest decodes the chart image query, the mirror of
// chartQuery.
func parseChartRequest(r *http.Request, datasetID string) app.WorkbenchRequest {
	q := r.URL.Query()

	req := app.NewWorkbenchRequest(datasetID)
	if v, err := strconv.Atoi(q.Get("skip")); err == nil && v >= 0 {
		req.SkipRows = v
	}
	req.IndexColumn = q.Get("index")
	if q.Get("wfset") != "" {
		req.SelectedSet = true
		req.Selected = q["wf"]
	}
	if v, err := strconv.Atoi(q.Get("w")); err == nil {
		req.ChartWidth = v
	}
	if v, err := strconv.Atoi(q.Get("h")); err == nil {
		req.ChartHeight = v
	}

	for i := 0; i < cursor.Count; i++ {
		id := i + 1
		st := cursor.DefaultState()
		st.Enabled = q.Get(fmt.Sprintf("c%d", id)) != ""
		if v, err := strconv.Atoi(q.Get(fmt.Sprintf("c%dmin", id))); err == nil {
			st.MinPos = v
		}
		if v, err := strconv.Atoi(q.Get(fmt.Sprintf("c%dmax", id))); err == nil {
			st.MaxPos = v
		}
		req.Cursors[i] = st
	}
	return req
}

// chartQuery encodes a snapshot as the chart image query string
func chartQuery(req app.WorkbenchRequest) string {
	v := url.Values{}
	if req.SkipRows > 0 {
		v.Set("skip", strconv.Itoa(req.SkipRows))
	}
	if req.IndexColumn != "" {
		v.Set("index", req.IndexColumn)
	}
	if req.SelectedSet {
		v.Set("wfset", "1")
		for _, name := range req.Selected {
			v.Add("wf", name)
		}
	}
	for i, st := range req.Cursors {
		id := i + 1
		if st.Enabled {
			v.Set(fmt.Sprintf("c%d", id), "1")
		}
		if st.MinPos >= 0 {
			v.Set(fmt.Sprintf("c%dmin", id), strconv.Itoa(st.MinPos))
		}
		if st.MaxPos >= 0 {
			v.Set(fmt.Sprintf("c%dmax", id), strconv.Itoa(st.MaxPos))
		}
	}
	return v.Encode()
}

// canonicalRequest rebuilds the snapshot from the resolved view, so
// the chart URL carries clamped positions and the effective selection
// rather than whatever the form posted.
func canonicalRequest(view *app.WorkbenchView, req app.WorkbenchRequest) app.WorkbenchRequest {
	out := app.NewWorkbenchRequest(req.DatasetID)
	out.SkipRows = view.SkipRows
	out.IndexColumn = view.IndexColumn
	out.Selected = view.Selected
	out.SelectedSet = true
	for i, c := range view.Cursors {
		if c == nil {
			continue
		}
		out.Cursors[i] = cursor.State{Enabled: c.Enabled, MinPos: c.MinPos, MaxPos: c.MaxPos}
	}
	return out
}
