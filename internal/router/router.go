package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chronicpal/backend/internal/api"
	"github.com/chronicpal/backend/internal/middleware"
	"github.com/chronicpal/backend/internal/types"
)

// Options carries the pieces SetupRouter wires together. Limiter and DB are
// optional; without a limiter the AI routes are not rate limited and
// without a DB the readiness probe is not mounted.
type Options struct {
	AllowedOrigins []string
	Insights       *api.InsightsHandler
	Validator      middleware.TokenValidator
	Limiter        *middleware.RateLimiter
	DB             *gorm.DB
}

// SetupRouter configures the application routes
func SetupRouter(opts Options) *gin.Engine {
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(opts.AllowedOrigins))

	router.GET("/health", api.HealthCheck)
	if opts.DB != nil {
		router.GET("/health/ready", api.ReadinessCheck(opts.DB))
	}

	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(opts.Validator))
	{
		protected.GET("/frequent-items", opts.Insights.FrequentItems)

		ai := protected.Group("/ai")
		ai.Use(middleware.RequireRole(types.RolePatient))
		if opts.Limiter != nil {
			ai.Use(opts.Limiter.RateLimitMiddleware())
		}
		opts.Insights.RegisterAIRoutes(ai)
	}

	return router
}
