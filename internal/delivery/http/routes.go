package http

import (
	"github.com/gin-gonic/gin"
	"github.com/shelfwatch/backend/config"
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
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// Product endpoints (read-only)
	products := router.Group("/products")
	{
		products.GET("", handler.ListProducts)
		products.GET("/search", handler.SearchProducts)
		products.GET("/compare", handler.CompareProducts)
	}

	return router
}
