package utils

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GinLogger replaces gin's default console logger with structured zap output.
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(RequestIDKey)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= 500:
			Logger.Error("request", fields...)
		case c.Writer.Status() >= 400:
			Logger.Warn("request", fields...)
		default:
			Logger.Info("request", fields...)
		}
	}
}

// GinRecovery recovers from handler panics, logs the stack through zap and
// answers with a generic JSON 500 so no endpoint ever returns a bare error.
func GinRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				Logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stacktrace"),
				)
				FailCode(c, 500, "internal server error", "INTERNAL", false)
				c.Abort()
			}
		}()
		c.Next()
	}
}

// RequestIDKey is the gin context key carrying the per-request ID.
const RequestIDKey = "request_id"
