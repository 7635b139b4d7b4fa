// File: internal/handler/http/router.go
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/apurv-1/RC4Community/internal/config"
	"github.com/apurv-1/RC4Community/internal/handler/http/middleware"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Federation  FederationLoginService
	Repos       RepositoryReader
	Members     MemberReader
	DB          *pgxpool.Pool
	Redis       *redis.Client
	RateLimiter middleware.RateLimiter
	Config      *config.Config
	Logger      *zap.Logger
}

// SetupRouter wires middleware and routes.
func SetupRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(deps.Logger))
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	router.Use(middleware.CorsMiddleware())
	router.Use(middleware.MetricsMiddleware())

	loginHandler := NewLoginHandler(deps.Federation, deps.Logger)
	channelHandler := NewChannelHandler(deps.Repos, deps.Members, deps.Logger)
	healthHandler := NewHealthHandler(deps.DB, deps.Redis)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", healthHandler.Health)

	// The federation entry point keeps its historical flat path.
	router.GET("/login",
		middleware.RateLimitMiddleware(deps.RateLimiter, deps.Config.Security.LoginIPLimit, deps.Logger),
		loginHandler.Login,
	)

	api := router.Group("/api/v1")
	{
		api.GET("/repos/:owner/:repo", channelHandler.GetRepository)
		api.GET("/channels/:roomName/members", channelHandler.GetChannelMembers)
	}

	return router
}
