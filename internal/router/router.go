package router

import (
	"github.com/gin-gonic/gin"
	"github.com/pageza/nutriplan/backend/internal/api"
	"github.com/pageza/nutriplan/backend/internal/middleware"
	"github.com/rs/zerolog"
)

// Handlers groups everything SetupRouter mounts. Admin may be nil when no
// operator secret is configured.
type Handlers struct {
	Recommendation *api.RecommendationHandler
	Catalog        *api.CatalogHandler
	Admin          *api.AdminHandler
	Health         *api.HealthHandler
}

// SetupRouter configures the application routes
func SetupRouter(logger zerolog.Logger, allowedOrigins []string, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(logger),
		middleware.CORS(allowedOrigins),
		middleware.ErrorHandler(),
	)

	if h.Health != nil {
		h.Health.RegisterRoutes(router)
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	h.Recommendation.RegisterRoutes(v1)
	h.Catalog.RegisterRoutes(v1)
	if h.Admin != nil {
		h.Admin.RegisterRoutes(v1)
	}

	return router
}
