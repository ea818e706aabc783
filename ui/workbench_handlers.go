package ui

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"

	"wavescope/app"
	apperrors "wavescope/internal/errors"
	"wavescope/internal/plot"
	"wavescope/ui/templates/fragments"
)

func statusForError(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.CodeDatasetNotFound:
		return http.StatusNotFound
	case apperrors.CodeUnsupportedFormat:
		return http.StatusUnsupportedMediaType
	case apperrors.CodeInvalidUpload, apperrors.CodeInvalidInput:
		return http.StatusBadRequest
	case apperrors.CodeChartBuild, apperrors.CodeEmptySelection, apperrors.CodeNonNumericSelection:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// handleIndex renders the landing page, with the workbench open when a
// dataset is picked.
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	summaries, err := a.datasets.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to list datasets", http.StatusInternalServerError)
		return
	}

	data := &indexPage{Title: "Wavescope", Summaries: summaries}
	if id := r.URL.Query().Get("dataset"); id != "" {
		req := app.NewWorkbenchRequest(id)
		view, err := a.workbench.BuildView(r.Context(), req)
		if err != nil {
			data.Alert = err.Error()
		} else {
			data.Workbench = newWorkbenchPage(view, req)
		}
	}
	a.renderTemplate(w, "index.html", data)
}

// handleWorkbench re-renders the workbench for one posted interaction
// snapshot. HTMX requests get the fragment; plain posts get the whole
// page.
func (a *App) handleWorkbench(w http.ResponseWriter, r *http.Request) {
	req := parseWorkbenchRequest(r)
	view, err := a.workbench.BuildView(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	page := newWorkbenchPage(view, req)
	if isHTMX(r) {
		a.renderPartial(w, fragments.Workbench, page)
		return
	}
	summaries, _ := a.datasets.List(r.Context())
	a.renderTemplate(w, "index.html", &indexPage{Title: "Wavescope", Summaries: summaries, Workbench: page})
}

func (a *App) handleChartSVG(w http.ResponseWriter, r *http.Request) {
	a.serveChart(w, r, plot.SVG)
}

func (a *App) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	a.serveChart(w, r, plot.PNG)
}

// serveChart renders the chart for the snapshot encoded in the query.
// The chart is rendered to a buffer first so failures become proper
// error responses instead of half-written images.
func (a *App) serveChart(w http.ResponseWriter, r *http.Request, format plot.Format) {
	req := parseChartRequest(r, chi.URLParam(r, "id"))

	var buf bytes.Buffer
	if err := a.workbench.RenderChart(r.Context(), req, format, &buf); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	if format == plot.PNG {
		w.Header().Set("Content-Type", "image/png")
	} else {
		w.Header().Set("Content-Type", "image/svg+xml")
	}
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}
