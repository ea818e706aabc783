package ui

import (
	"html/template"
	"net/http"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// handleGuide renders the embedded user guide from markdown
func (a *App) handleGuide(w http.ResponseWriter, r *http.Request) {
	raw, err := embeddedFiles.ReadFile("guide.md")
	if err != nil {
		a.logger.Error("Guide source missing: %v", err)
		http.Error(w, "Guide unavailable", http.StatusInternalServerError)
		return
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	content := markdown.Render(p.Parse(raw), renderer)

	a.renderTemplate(w, "guide.html", map[string]interface{}{
		"Title":   "Wavescope Guide",
		"Content": template.HTML(content),
	})
}
