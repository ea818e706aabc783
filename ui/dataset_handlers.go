package ui

import (
	"net/http"

	"wavescope/app"
)

// handleDatasetUpload ingests one uploaded file and opens its
// workbench. Rejected files re-render the landing page with the
// inline error.
func (a *App) handleDatasetUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("dataset")
	if err != nil {
		a.renderUploadError(w, r, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	ds, err := a.datasets.Ingest(r.Context(), app.UploadRequest{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	})
	if err != nil {
		a.renderUploadError(w, r, statusForError(err), err.Error())
		return
	}

	http.Redirect(w, r, "/?dataset="+ds.ID.String(), http.StatusSeeOther)
}

func (a *App) renderUploadError(w http.ResponseWriter, r *http.Request, status int, message string) {
	summaries, _ := a.datasets.List(r.Context())
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(status)
	a.renderTemplate(w, "index.html", &indexPage{Title: "Wavescope", Summaries: summaries, Alert: message})
}
