package http

import (
	"github.com/gin-gonic/gin"
	"github.com/raisket/marketplace/config"
	"github.com/raisket/marketplace/internal/logging"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	logger = logging.OrNop(logger)

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(SessionMiddleware(cfg.Server.SessionCookie, cfg.Server.Environment == "production"))
	{
		v1.GET("/categories", handler.ListCategories)

		products := v1.Group("/products")
		{
			products.GET("", handler.ListProducts)
			products.GET("/:id", handler.GetProduct)
			products.GET("/:id/summary", handler.GetProductSummary)
			products.GET("/:id/reviews", handler.ListReviews)
			products.POST("/:id/reviews", handler.SubmitReview)
		}

		compare := v1.Group("/compare")
		{
			compare.GET("", handler.GetComparison)
			compare.POST("", handler.AddToComparison)
			compare.DELETE("", handler.ClearComparison)
			compare.GET("/table", handler.GetComparisonTable)
			compare.GET("/:id", handler.ComparisonContains)
			compare.DELETE("/:id", handler.RemoveFromComparison)
		}

		v1.POST("/recommendations", handler.Recommend)
		v1.POST("/summaries", handler.Summarize)
		v1.POST("/offers", handler.LandingOffer)

		v1.GET("/notices", handler.DrainNotices)
	}

	return router
}
