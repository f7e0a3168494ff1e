package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/memberhub/internal/infrastructure/ratelimit"
	"github.com/orris-inc/memberhub/internal/shared/errors"
	"github.com/orris-inc/memberhub/internal/shared/logger"
	"github.com/orris-inc/memberhub/internal/shared/utils"
)

// RateLimiter limits requests per client IP. Limiter failures let the
// request through.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	config  ratelimit.RateLimitConfig
	prefix  string
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.RateLimiter, prefix string, config ratelimit.RateLimitConfig, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		config:  config,
		prefix:  prefix,
		logger:  logger,
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.prefix + ":" + c.ClientIP()

		allowed, err := rl.limiter.Allow(c.Request.Context(), key, rl.config)
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable", "key", key, "error", err)
			c.Next()
			return
		}

		if !allowed {
			rl.logger.Warnw("rate limit exceeded", "key", key, "path", c.Request.URL.Path)
			utils.ErrorResponseWithError(c, errors.NewTooManyRequestsError("rate limit exceeded, please try again later"))
			c.Abort()
			return
		}

		c.Next()
	}
}
