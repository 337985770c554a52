package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/changhyeonkim/ambient-toolbox/internal/shared/logger"
	"github.com/gin-gonic/gin"
)

const DefaultTimeout = 30 * time.Second

// Timeout bounds the request context. Handlers, GORM and GraphQL resolvers all
// receive the deadline through c.Request.Context(); nothing is written here
// when it expires, the handler owns the response.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			logger.FromContext(c.Request.Context()).Warn("요청 처리 시간 초과",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"timeout", timeout.String(),
				"status", c.Writer.Status(),
				"request_id", GetRequestID(c),
			)
		}
	}
}
