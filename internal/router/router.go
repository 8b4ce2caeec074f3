package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/huellas-salud/vet-api/internal/middleware"
	"github.com/huellas-salud/vet-api/pkg/logger"
	"github.com/huellas-salud/vet-api/pkg/metrics"
)

// Handler is anything that can mount its routes on a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	RequestTimeout   time.Duration
}

type Router struct {
	engine *gin.Engine
}

// New assembles the gin engine: recovery, request id, logging, CORS,
// metrics and rate limiting around every /api/v1 route, plus the /metrics
// scrape endpoint at the root.
func New(cfg Config, l *logger.Logger, m *metrics.Metrics, handlers ...Handler) *Router {
	engine := gin.New()

	engine.Use(
		middleware.Recovery(l),
		middleware.RequestID(),
		middleware.Logger(l),
		middleware.CORS(middleware.DefaultCORSConfig()),
		middleware.Metrics(m),
	)
	if cfg.RequestTimeout > 0 {
		engine.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	if cfg.RateLimitEnabled {
		engine.Use(middleware.RateLimit(cfg.RateLimit, cfg.RateBurst))
	}

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/v1")
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}

	return &Router{engine: engine}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
