package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/blog-backend/internal/domain/ports"
)

// RequestLogger registra método, rota, status, latência e IP de cada requisição
func RequestLogger(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			logger.Error("request failed", args...)
		case status >= 400:
			logger.Warn("request rejected", args...)
		default:
			logger.Info("request handled", args...)
		}
	}
}
