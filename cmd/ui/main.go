package main

import (
	"context"
	"log"

	"wavescope/adapters/memstore"
	"wavescope/adapters/tabular"
	"wavescope/app"
	"wavescope/internal/testkit"
	"wavescope/ui"
)

// Development entry: in-memory defaults, demo dataset preloaded.
func main() {
	repo := memstore.New(memstore.DefaultConfig())
	datasets := app.NewDatasetService(repo, tabular.NewReader(), 0, 0)
	workbench := app.NewWorkbenchService(repo)

	if err := datasets.Seed(context.Background(), testkit.NewKit().Dataset("demo-waves.csv")); err != nil {
		log.Fatal("Failed to seed demo dataset:", err)
	}

	uiApp, err := ui.NewApp(ui.Config{Port: "8080"}, datasets, workbench)
	if err != nil {
		log.Fatal("Failed to create UI app:", err)
	}

	log.Println("Starting Wavescope UI on http://localhost:8080")
	log.Fatal(uiApp.Start())
}
