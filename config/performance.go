package config

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"weddingplanner-backend/logger"
	"weddingplanner-backend/utils"
)

// PerformanceLogger logs every request with its latency and flags the ones
// slower than threshold.
func PerformanceLogger(log *logger.Logger, threshold time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", latency.Milliseconds(),
		}
		if principal, ok := utils.PrincipalFrom(c); ok {
			fields = append(fields, "principal", string(principal))
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}

		if threshold > 0 && latency > threshold {
			log.Warn("slow request", "method", c.Request.Method, "path", path, "duration_ms", latency.Milliseconds())
		}
	}
}
