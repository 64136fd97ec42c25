package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helpdesk-inc/helpdesk/internal/infrastructure/ratelimit"
	"github.com/helpdesk-inc/helpdesk/internal/shared/logger"
	"github.com/helpdesk-inc/helpdesk/internal/shared/utils"
)

// RateLimit enforces limiter per client IP. A nil limiter disables the check.
// If Redis is unavailable the request is let through.
func RateLimit(limiter ratelimit.Limiter, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		allowed, err := limiter.Allow(c.Request.Context(), c.RemoteIP())
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request", "error", err, "path", c.FullPath())
			c.Next()
			return
		}

		if !allowed {
			log.Warnw("rate limit exceeded", "client_ip", c.RemoteIP(), "path", c.FullPath())
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
