package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AccessLog writes one structured line per request.
func AccessLog(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       normalizePath(c),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         ipFromCtx(c),
			"user_id":    UserID(c),
		})
		switch {
		case status >= 500:
			entry.Error("http request")
		case status >= 400:
			entry.Warn("http request")
		default:
			entry.Info("http request")
		}
	}
}
