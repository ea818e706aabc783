package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"wavescope/adapters/memstore"
	"wavescope/adapters/tabular"
	"wavescope/app"
	"wavescope/internal/config"
	"wavescope/internal/testkit"
	"wavescope/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Dataset registry and services
	repo := memstore.New(memstore.Config{
		TTL:      appConfig.Store.TTL,
		Capacity: appConfig.Store.Capacity,
	})
	datasets := app.NewDatasetService(repo, tabular.NewReader(), appConfig.Upload.MaxUploadBytes, appConfig.Upload.ParseConcurrency)
	workbench := app.NewWorkbenchService(repo)

	// Preload the demonstration dataset when requested
	if appConfig.Demo.Enabled {
		if err := datasets.Seed(context.Background(), testkit.NewKit().Dataset("demo-waves.csv")); err != nil {
			log.Fatalf("Failed to seed demo dataset: %v", err)
		}
		log.Println("Demo dataset loaded")
	}

	// Initialize web server
	server, err := ui.NewApp(ui.Config{Port: appConfig.Server.Port}, datasets, workbench)
	if err != nil {
		log.Fatalf("Failed to create UI app: %v", err)
	}

	log.Printf("Starting Wavescope server on port %s", appConfig.Server.Port)
	log.Fatal(server.Start())
}
