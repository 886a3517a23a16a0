package main

import (
	"fmt"
	"log"
	"os"

	"pv-clipping/internal/api/handlers"
	"pv-clipping/internal/api/middleware"
	"pv-clipping/internal/config"
	"pv-clipping/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfgPath := os.Getenv("CONFIG_FILE")
	if cfgPath == "" {
		cfgPath = "./config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config %s: %v", cfgPath, err)
	}

	port := os.Getenv("API_PORT")
	if port == "" {
		port = cfg.Server.Port
	}

	log.Printf("Policy: reference_year=%d zero_price_eligible=%v match_tolerance=%dmin",
		cfg.Policy.ReferenceYear, cfg.Policy.ZeroPriceEligible, cfg.Policy.MatchToleranceMinutes)

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	collector := metrics.NewCollector("pv_clipping", nil)
	analyzeHandler := handlers.NewAnalyzeHandler(cfg, collector)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/analyze", analyzeHandler.Analyze)
		api.POST("/analyze/report", analyzeHandler.Report)
		api.POST("/analyze/export", analyzeHandler.Export)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
