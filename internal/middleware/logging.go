package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"ledgerly/internal/logger"
	"ledgerly/internal/uuid"
)

const (
	requestIDKey    = "requestID"
	requestIDHeader = "X-Request-ID"
)

// RequestID returns the request ID stored by RequestLogging, or "".
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogging returns a Gin middleware that logs each request with a
// request ID, method, path, status code, latency, and client IP using Zap.
// A well-formed X-Request-ID from the caller is reused.
func RequestLogging() gin.HandlerFunc {
	log := logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if !uuid.IsValid(requestID) {
			requestID = uuid.New()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)

		c.Next()

		fields := []interface{}{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if c.Writer.Status() >= 500 {
			log.Warnw("request", fields...)
			return
		}
		log.Infow("request", fields...)
	}
}
