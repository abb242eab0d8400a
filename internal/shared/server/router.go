package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/chat"
	"portfolio-backend/internal/services/health"
	"portfolio-backend/internal/shared/config"
	"portfolio-backend/internal/shared/server/middleware"
	"portfolio-backend/internal/shared/server/respond"
)

const (
	rateLimitWindow  = 10 * time.Minute
	rateLimitMax     = 20
	rateLimitMessage = "Too many requests from this IP, please try again after 10 minutes"
)

// RouterDeps collects what the router needs wired in.
type RouterDeps struct {
	Config      config.Config
	ChatHandler *chat.Handler
	HealthSvc   *health.Service
	// RateLimiter may be nil; a wall-clock limiter is created then.
	RateLimiter *middleware.RateLimiter
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
		middleware.Session(middleware.SessionConfig{
			Secret: []byte(deps.Config.SessionSecret),
			Secure: deps.Config.Env == "production",
		}),
	)

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.HealthSvc.Status())
	})

	chatGroup := api.Group("")
	chatGroup.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rule:    middleware.RateLimitRule{Window: rateLimitWindow, Max: rateLimitMax},
		Message: rateLimitMessage,
		Limiter: deps.RateLimiter,
	}))
	deps.ChatHandler.RegisterRoutes(chatGroup)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5003"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
