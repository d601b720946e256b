package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Saarathi-n/eshopzz/config"
	httpDelivery "github.com/Saarathi-n/eshopzz/internal/delivery/http"
	"github.com/Saarathi-n/eshopzz/internal/infrastructure/cache"
	"github.com/Saarathi-n/eshopzz/internal/infrastructure/shopsync"
	"github.com/Saarathi-n/eshopzz/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting eshopzz v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Upstream: %s (timeout: %s)", cfg.Upstream.BaseURL, cfg.Upstream.Timeout)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	gateway := shopsync.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		gateway.SetDebug(true)
		log.Printf("Aggregation client debug mode enabled")
	}

	// Initialize usecase layer
	pipeline := usecase.NewPipeline(
		gateway,
		memoryCache,
		usecase.PipelineConfig{
			CacheTTL: cfg.Cache.TTL,
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(pipeline)

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
