package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-api/cmd/api/di"
	"user-api/internal/adapter/gin/middleware"
	ginrouter "user-api/internal/adapter/gin/router"
	"user-api/internal/config"
	"user-api/internal/openapi"
)

// Server struct holds all server dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New builds the HTTP server from the container's dependencies.
func New(cfg *config.Config, l *zap.Logger, c *di.Container) (*Server, error) {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	info := openapi.Info{
		Title:       "User API",
		Description: "CRUD operations on users",
		Version:     cfg.Logger.ServiceVersion,
	}

	opts := ginrouter.Options{
		RateLimiter: c.RateLimiter,
		CORSOrigins: cfg.App.CORSAllowedOrigins,
	}
	if cfg.App.MetricsEnabled {
		opts.Metrics = middleware.NewMetrics(metricsNamespace(cfg.Logger.ServiceName))
	}

	httpServer, err := SetupGinServer(c.GinHandler, c.UserRepo, info, opts, httpAddress(cfg), l)
	if err != nil {
		return nil, fmt.Errorf("failed to set up HTTP server: %w", err)
	}

	return &Server{
		Config: cfg,
		Logger: l,
		HTTP:   httpServer,
	}, nil
}

// Start listens on the configured port and serves until Shutdown.
// A clean shutdown returns nil.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	lis, err := lc.Listen(ctx, "tcp", s.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.Logger.Info("HTTP server running", zap.String("address", lis.Addr().String()))

	if err := s.HTTP.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.HTTP.Shutdown(ctx)
}

func httpAddress(cfg *config.Config) string {
	return ":" + cfg.App.HTTPPort
}

// metricsNamespace turns a service name into a valid Prometheus prefix.
func metricsNamespace(service string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, service)
}
