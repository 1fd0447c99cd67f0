package middleware

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"user-api/internal/schema"
	"user-api/pkg/logger"
)

// RequestIDHeader carries the request id in and out of the service.
const RequestIDHeader = "X-Request-ID"

// RequestID stores a request id in the request context, reusing the
// caller-supplied header when present, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, id := logger.ContextWithRequestID(c.Request.Context(), c.GetHeader(RequestIDHeader))
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Logger writes one access log entry per request. It must run after RequestID.
func Logger(log *zap.Logger) gin.HandlerFunc {
	return ginzap.GinzapWithConfig(log, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		Context:    requestIDField,
	})
}

// Recovery converts panics into a 500 ErrorOutput.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return ginzap.CustomRecoveryWithZap(log, true, func(c *gin.Context, _ any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, schema.ErrorOutput{Error: "internal server error"})
	})
}

func requestIDField(c *gin.Context) []zapcore.Field {
	id := logger.GetRequestID(c.Request.Context())
	if id == "" {
		return nil
	}
	return []zapcore.Field{zap.String("request_id", id)}
}
