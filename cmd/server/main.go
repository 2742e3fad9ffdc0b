package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hvutuan2514/SkincareApp/config"
	httpDelivery "github.com/hvutuan2514/SkincareApp/internal/delivery/http"
	"github.com/hvutuan2514/SkincareApp/internal/domain"
	"github.com/hvutuan2514/SkincareApp/internal/infrastructure/cache"
	"github.com/hvutuan2514/SkincareApp/internal/infrastructure/gemini"
	"github.com/hvutuan2514/SkincareApp/internal/infrastructure/postgres"
	"github.com/hvutuan2514/SkincareApp/internal/infrastructure/supabase"
	"github.com/hvutuan2514/SkincareApp/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Skincare Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Store Type: %s", cfg.Store.Type)

	// Initialize the product store
	store, err := buildStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize product store: %v", err)
	}

	// Taxonomy lookups are cached; the product catalog never is
	cachedStore := cache.NewTaxonomyCache(store, cfg.Store.CacheTTL)
	log.Printf("Taxonomy cache TTL: %s", cfg.Store.CacheTTL)

	// Image analysis is optional; without a Gemini key the analysis
	// endpoint reports the classifier as unavailable
	var classifier domain.ConcernClassifier
	if cfg.Gemini.APIKey != "" {
		geminiClient := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.BaseURL, cfg.Gemini.Model)
		if cfg.Server.Environment == "development" {
			geminiClient.SetDebug(true)
			log.Printf("Gemini client debug mode enabled")
		}
		classifier = geminiClient
		log.Printf("Gemini API configured: %s (model: %s)", cfg.Gemini.BaseURL, cfg.Gemini.Model)
	} else {
		log.Printf("WARNING: Gemini API key not configured - skin analysis disabled")
	}

	// Initialize usecase layer
	recommendationService := usecase.NewRecommendationService(
		cachedStore,
		classifier,
		usecase.RecommendationConfig{
			EnableDebugLogging: cfg.Matching.EnableDebugLogging,
		},
	)

	log.Printf("Matching: debug=%v", cfg.Matching.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(recommendationService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildStore constructs the configured TaxonomyStore backend.
func buildStore(cfg *config.Config) (domain.TaxonomyStore, error) {
	switch cfg.Store.Type {
	case "supabase":
		client := supabase.NewClient(cfg.Store.URL, cfg.Store.APIKey)
		if cfg.Server.Environment == "development" {
			client.SetDebug(true)
		}
		return client, nil
	case "postgres":
		store, err := postgres.Open(cfg.Store.DSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Store.Type)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
