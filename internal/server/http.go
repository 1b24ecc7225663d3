package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Dependency is an upstream checked by /v1/ping.
type Dependency struct {
	Name string
	Ping func(ctx context.Context) error
}

// Registrar mounts a group of API routes.
type Registrar interface {
	Register(r gin.IRoutes)
}

// Options carries what the router serves besides its own operational endpoints.
type Options struct {
	Dependencies []Dependency
	// Registry backs /metrics. A fresh registry is created when nil.
	Registry *prometheus.Registry
	Routes   []Registrar
}

// NewRouter builds the gin engine with middleware, operational endpoints and
// the registered API routes.
func NewRouter(cfg *config.App, logger zerolog.Logger, opts Options) *gin.Engine {
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(
		requestID(logger),
		allowHeaders(cfg.CORS),
		corsMiddleware(cfg.CORS),
		requestLogger(logger),
		newHTTPMetrics(reg).middleware(),
		recovery(logger),
	)

	r.NoRoute(func(c *gin.Context) { httperrors.Abort(c, http.StatusNotFound) })
	r.NoMethod(func(c *gin.Context) { httperrors.Abort(c, http.StatusMethodNotAllowed) })

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	r.GET("/v1/ping", func(c *gin.Context) {
		ctx := c.Request.Context()
		if err := pingDependencies(ctx, opts.Dependencies); err != nil {
			log := logging.FromContext(ctx, logger)
			log.Error().Err(err).Msg("dependency ping failed")
			httperrors.Abort(c, http.StatusBadGateway)
			return
		}
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})

	for _, routes := range opts.Routes {
		routes.Register(r)
	}
	return r
}

// NewHTTPServer wraps NewRouter in an http.Server bound to cfg.HTTPAddr.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, opts Options) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewRouter(cfg, logger, opts),
	}
}

func pingDependencies(ctx context.Context, deps []Dependency) error {
	for _, dep := range deps {
		if err := dep.Ping(ctx); err != nil {
			return fmt.Errorf("ping %s: %w", dep.Name, err)
		}
	}
	return nil
}
