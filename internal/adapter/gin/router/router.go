package router

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"user-api/internal/adapter/gin/binding"
	"user-api/internal/adapter/gin/handler"
	"user-api/internal/adapter/gin/middleware"
	"user-api/internal/openapi"
	"user-api/internal/route"
	"user-api/internal/schema"
)

// Documentation endpoints.
const (
	DocPath     = "/doc"
	DocYAMLPath = "/doc.yaml"
	UIPath      = "/ui"
)

// RootGreeting is served on GET /.
const RootGreeting = "Hello Hono!"

const healthTimeout = 2 * time.Second

// MetricsPath serves Prometheus metrics when Options.Metrics is set.
const MetricsPath = "/metrics"

// Pinger reports datastore liveness for /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options holds the optional parts of the router. The zero value disables
// rate limiting and metrics and allows every CORS origin.
type Options struct {
	RateLimiter *middleware.RateLimiter
	Metrics     *middleware.Metrics
	CORSOrigins []string
}

// SetupRouter builds the gin engine: middleware, the user routes, the
// generated OpenAPI document and its UI.
func SetupRouter(
	userHandler *handler.UserHandler,
	db Pinger,
	info openapi.Info,
	opts Options,
	log *zap.Logger,
) (*gin.Engine, error) {
	doc, err := route.Document(info, route.All()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build OpenAPI document: %w", err)
	}
	docJSON, err := doc.JSON()
	if err != nil {
		return nil, fmt.Errorf("failed to render OpenAPI JSON: %w", err)
	}
	docYAML, err := doc.YAML()
	if err != nil {
		return nil, fmt.Errorf("failed to render OpenAPI YAML: %w", err)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(opts.Metrics.Middleware())
	router.Use(middleware.CORS(opts.CORSOrigins))
	router.Use(opts.RateLimiter.Middleware())

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, schema.ErrorOutput{Error: "route not found"})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, schema.ErrorOutput{Error: "method not allowed"})
	})

	register(router, route.Root, func(c *gin.Context) {
		c.String(http.StatusOK, RootGreeting)
	})

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			log.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	router.GET(DocPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", docJSON)
	})
	router.GET(DocYAMLPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml; charset=utf-8", docYAML)
	})
	router.GET(UIPath+"/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL(DocPath))))

	if opts.Metrics != nil {
		router.GET(MetricsPath, gin.WrapH(opts.Metrics.Handler()))
	}

	register(router, route.ListUsers, binding.Bind(route.ListUsers, binding.NoInput, userHandler.ListUsers, log))
	register(router, route.CreateUser, binding.Bind(route.CreateUser, binding.Body[schema.CreateUserInput], userHandler.CreateUser, log))
	register(router, route.GetUser, binding.Bind(route.GetUser, binding.PathID, userHandler.GetUser, log))
	register(router, route.UpdateUser, binding.Bind(route.UpdateUser, binding.PathIDAndUpdate, userHandler.UpdateUser, log))
	register(router, route.DeleteUser, binding.Bind(route.DeleteUser, binding.PathID, userHandler.DeleteUser, log))

	return router, nil
}

func register(r gin.IRoutes, def route.Definition, h gin.HandlerFunc) {
	r.Handle(def.Method, def.GinPath(), h)
}
