package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shelfwatch/backend/config"
	httpDelivery "github.com/shelfwatch/backend/internal/delivery/http"
	"github.com/shelfwatch/backend/internal/infrastructure/feed"
	"github.com/shelfwatch/backend/internal/usecase"
)

func main() {
	_ = godotenv.Load() // load .env if present; not fatal if missing

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Shelfwatch Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Products file: %s", cfg.Data.ProductsPath)
	log.Printf("Snapshots file: %s", cfg.Data.SnapshotsPath)

	if _, err := os.Stat(cfg.Data.ProductsPath); err != nil {
		log.Printf("WARNING: products file not readable yet (%v) - /products will return 503 until the scraper runs or %s is set", err, config.EnvProductsPath)
	}

	// Initialize infrastructure dependencies
	loader := feed.NewLoader(cfg.Data.ProductsPath, cfg.Data.SnapshotsPath)

	// Initialize usecase layer
	viewService := usecase.NewViewService(loader, loader)

	if cfg.RateLimit.PerIP > 0 {
		log.Printf("Rate limit: %d requests/minute per IP", cfg.RateLimit.PerIP)
	} else {
		log.Printf("Rate limit disabled")
	}

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(viewService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
