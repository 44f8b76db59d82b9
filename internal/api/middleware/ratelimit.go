package middleware

import (
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/Allen-Brian/AGRICHAIN/internal/api/errors"
	"github.com/Allen-Brian/AGRICHAIN/internal/logger"
	"github.com/Allen-Brian/AGRICHAIN/internal/ratelimit"
)

// RateLimit admits each request against the limiter, keyed by caller or client IP.
// Limiter failures let the request through.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if caller, ok := CallerFromContext(c); ok {
			key = string(caller.Role) + ":" + caller.ID
		}

		decision, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.WarnCtx(c.Request.Context(), "Rate limiter unavailable, admitting request",
				zap.Error(err),
				zap.String("key", key),
			)
			c.Next()
			return
		}

		c.Header("RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Header("RateLimit-Reset", strconv.Itoa(ceilSeconds(decision.ResetAfter)))

		if !decision.Allowed {
			c.Header("Retry-After", strconv.Itoa(max(ceilSeconds(decision.RetryAfter), 1)))
			apiErr := apierrors.NewRateLimitedError("Too many requests")
			c.AbortWithStatusJSON(apiErr.Status, apierrors.Failure(apiErr))
			return
		}

		c.Next()
	}
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}
