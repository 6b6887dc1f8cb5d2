package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront/internal/infrastructure/ratelimit"
	"storefront/pkg/errors"
	"storefront/pkg/logger"
	"storefront/pkg/response"
)

// RateLimit throttles each client IP with its own token bucket.
func RateLimit(limiter *ratelimit.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			allowed, wait := limiter.Allow(ip)
			if !allowed {
				seconds := int(math.Ceil(wait.Seconds()))
				if seconds < 1 {
					seconds = 1
				}
				logger.Warn("rate limit exceeded: ip=%s retry_after=%ds", ip, seconds)
				c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
				return response.Error(c, errors.TooManyRequests("Rate limit exceeded"))
			}
			return next(c)
		}
	}
}
