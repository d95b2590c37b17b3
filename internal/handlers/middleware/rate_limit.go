package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
	"github.com/rafabene/blog-backend/internal/domain/ports"
)

// RateLimiter limita requisições por IP e rota dentro de uma janela fixa
type RateLimiter struct {
	counter ports.RateCounter
	limit   int
	window  time.Duration
	logger  ports.Logger
}

// NewRateLimiter cria um limitador de requestsPerMinute por IP e rota
func NewRateLimiter(counter ports.RateCounter, requestsPerMinute int, logger ports.Logger) *RateLimiter {
	return &RateLimiter{
		counter: counter,
		limit:   requestsPerMinute,
		window:  time.Minute,
		logger:  logger,
	}
}

// Limit retorna o middleware; falhas do contador deixam a requisição passar
func (l *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.limit <= 0 {
			c.Next()
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		key := c.ClientIP() + ":" + path

		count, err := l.counter.Increment(c.Request.Context(), key, l.window)
		if err != nil {
			l.logger.Warn("rate limit increment failed", "key", key, "error", err)
			c.Next()
			return
		}

		remaining := l.limit - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(l.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if count > int64(l.limit) {
			l.logger.Warn("rate limit exceeded", "key", key, "count", count)
			c.Header("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			abortWithError(c, domainerrors.ErrRateLimited)
			return
		}

		c.Next()
	}
}
