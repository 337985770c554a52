package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	sharedError "github.com/changhyeonkim/ambient-toolbox/internal/shared/error"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/handler"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/logger"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const rateLimited = "RATE_LIMITED"

var ErrRateLimited = sharedError.NewDomainError(rateLimited)

func init() {
	sharedError.RegisterDomainErrorResponse(rateLimited, sharedError.ErrorResponse{
		Status:  http.StatusTooManyRequests,
		Code:    "ERROR-004",
		Message: "요청이 너무 많습니다. 잠시 후 다시 시도해 주세요.",
	})
}

// NewIPLimiter builds an in-memory per-IP limiter from a formatted rate ("20-M", "100-H", ...)
func NewIPLimiter(formatted string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("rate limit 포맷 오류 %q: %w", formatted, err)
	}
	return limiter.New(memory.NewStore(), rate), nil
}

// RateLimit rejects requests once the client IP exceeds the limiter's rate
func RateLimit(limiterInstance *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.FromContext(c.Request.Context())
		ip := c.ClientIP()

		limitContext, err := limiterInstance.Get(c.Request.Context(), ip)
		if err != nil {
			log.Error("Rate limit 조회 실패", "ip", ip, "error", err)
			handler.RespondServiceError(c, fmt.Errorf("rate limit 조회 ip=%s: %w", ip, err))
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(limitContext.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(limitContext.Remaining, 10))

		if limitContext.Reached {
			log.Warn("Rate limit 초과", "ip", ip, "limit", limitContext.Limit)
			retryAfter := max(time.Until(time.Unix(limitContext.Reset, 0)).Round(time.Second), time.Second)
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			handler.RespondServiceError(c, fmt.Errorf("ip=%s %w", ip, ErrRateLimited))
			c.Abort()
			return
		}

		c.Next()
	}
}
