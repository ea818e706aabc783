package ui

import (
	"embed"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"wavescope/app"
	"wavescope/internal"
)

//go:embed templates/* static/* guide.md
var embeddedFiles embed.FS

// App serves the waveform workbench
type App struct {
	router    *chi.Mux
	datasets  *app.DatasetService
	workbench *app.WorkbenchService
	templates *template.Template
	logger    *internal.Logger
	port      string
}

// Config holds UI application configuration
type Config struct {
	Port string
}

// NewApp creates the UI application over the two services
func NewApp(config Config, datasets *app.DatasetService, workbench *app.WorkbenchService) (*App, error) {
	funcMap := template.FuncMap{
		"fnum": func(v float64) string {
			if math.IsNaN(v) {
				return "NaN"
			}
			return strconv.FormatFloat(v, 'g', 6, 64)
		},
		"add": func(a, b int) int { return a + b },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		datasets:  datasets,
		workbench: workbench,
		templates: templates,
		logger:    internal.DefaultLogger.Tagged("UI"),
		port:      config.Port,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", staticFS)
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/guide", a.handleGuide)

	a.router.Post("/api/datasets/upload", a.handleDatasetUpload)
	a.router.Post("/api/workbench", a.handleWorkbench)
	a.router.Get("/api/datasets/{id}/chart.svg", a.handleChartSVG)
	a.router.Get("/api/datasets/{id}/chart.png", a.handleChartPNG)
}

// Handler exposes the router, mainly for tests
func (a *App) Handler() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.port
	a.logger.Info("Starting Wavescope UI server on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Template helpers
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		a.logger.Error("Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

// HTMX helpers
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func (a *App) renderPartial(w http.ResponseWriter, templateName string, data interface{}) {
	a.renderTemplate(w, templateName, data)
}
