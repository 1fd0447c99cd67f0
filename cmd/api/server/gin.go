package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	ginhandler "user-api/internal/adapter/gin/handler"
	ginrouter "user-api/internal/adapter/gin/router"
	"user-api/internal/openapi"
)

// SetupGinServer builds the REST router and wraps it in an http.Server with
// conservative timeouts.
func SetupGinServer(
	handler *ginhandler.UserHandler,
	db ginrouter.Pinger,
	info openapi.Info,
	opts ginrouter.Options,
	addr string,
	l *zap.Logger,
) (*http.Server, error) {
	router, err := ginrouter.SetupRouter(handler, db, info, opts, l)
	if err != nil {
		return nil, err
	}

	l.Info("REST API configured",
		zap.String("address", addr),
		zap.String("docs", ginrouter.DocPath),
		zap.String("ui", ginrouter.UIPath+"/"),
		zap.Bool("metrics", opts.Metrics != nil),
		zap.Bool("rate_limit", opts.RateLimiter != nil),
	)

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}, nil
}
