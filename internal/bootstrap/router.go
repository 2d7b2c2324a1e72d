package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/questmap/questmap-backend/internal/api/http"
	"github.com/questmap/questmap-backend/internal/api/http/middleware"
	qghttp "github.com/questmap/questmap-backend/internal/api/http/questgraph"
	"github.com/questmap/questmap-backend/internal/observability"
	"github.com/questmap/questmap-backend/internal/questgraph/service"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	DefaultLang    string
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int

	Graph   *service.GraphService
	Cache   httpapi.Pinger
	Metrics *observability.Collector
	Logger  *zap.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(cors.New(corsConfig(dep.AllowedOrigins)))
	if dep.Metrics != nil {
		r.Use(middleware.Metrics(dep.Metrics))
		r.GET("/metrics", gin.WrapH(dep.Metrics.Handler()))
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Cache, func() string {
		return dep.Graph.Snapshot().Fingerprint
	})
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	if dep.RateLimitRPS > 0 {
		api.Use(middleware.RateLimit(middleware.NewIPRateLimiter(dep.RateLimitRPS, dep.RateLimitBurst)))
	}

	h := qghttp.New(dep.Graph, dep.DefaultLang, dep.Logger)
	h.Register(api)
	h.RegisterAdmin(api.Group("/admin"))

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "X-Request-Id")
	cfg.ExposeHeaders = []string{"X-Request-Id"}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
