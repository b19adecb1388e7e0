package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "photoshare-backend/internal/auth"
	"photoshare-backend/internal/images"
	"photoshare-backend/internal/services/health"
	"photoshare-backend/internal/shared/config"
	"photoshare-backend/internal/shared/metrics"
	"photoshare-backend/internal/shared/server/middleware"
	"photoshare-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config       config.Config
	Health       *health.Service
	ImageHandler *images.Handler
	UserHandler  *users.Handler
	GoogleAuth   *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, deps.Health.Status())
	})
	api.GET("/metrics", metrics.Handler())

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.ImageHandler != nil {
		// Uploads are the heavy path; throttle them per principal.
		uploadLimiter := middleware.NewRateLimiter(nil)
		api.Use(uploadRateLimit(uploadLimiter))
		deps.ImageHandler.RegisterRoutes(api)
	}

	return r
}

func uploadRateLimit(limiter *middleware.RateLimiter) gin.HandlerFunc {
	limit := middleware.RateLimit(limiter, middleware.RateLimitRule{Rate: 1, Burst: 10})
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		limit(c)
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
