package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockdesk/internal/infrastructure/ratelimit"
	"stockdesk/internal/shared/logger"
)

const loginKeyPrefix = "login:"

// LoginRateLimiter throttles password submissions per client IP.
// Every POST counts, successful or not.
type LoginRateLimiter struct {
	limiter ratelimit.RateLimiter
	config  ratelimit.RateLimitConfig
	logger  logger.Interface
}

func NewLoginRateLimiter(limiter ratelimit.RateLimiter, perMinute int, logger logger.Interface) *LoginRateLimiter {
	return &LoginRateLimiter{
		limiter: limiter,
		config: ratelimit.RateLimitConfig{
			RequestsPerMinute: perMinute,
			RequestsPerHour:   perMinute * 10,
		},
		logger: logger,
	}
}

// Limit runs onLimited instead of the handler once the client is over the limit.
func (rl *LoginRateLimiter) Limit(onLimited gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost || rl.config.RequestsPerMinute <= 0 {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		allowed, err := rl.limiter.Allow(c.Request.Context(), loginKeyPrefix+clientIP, rl.config)
		if err != nil {
			// Store unavailable: let the request through rather than lock everyone out.
			rl.logger.Warnw("login rate limit check failed", "client_ip", clientIP, "error", err)
			c.Next()
			return
		}

		if !allowed {
			rl.logger.Warnw("login rate limit exceeded", "client_ip", clientIP)
			onLimited(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
