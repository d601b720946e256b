package http

import (
	"github.com/gin-gonic/gin"

	"github.com/Saarathi-n/eshopzz/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Root and health endpoints
	router.GET("/", handler.Index)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/search", handler.Search)
		v1.GET("/results", handler.Results)
		v1.PUT("/filters", handler.UpdateFilters)
		v1.PUT("/sort", handler.UpdateSort)
	}

	return router
}
