package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"bistro/internal/caching"
	"bistro/internal/common"

	"github.com/labstack/echo/v4"
)

// Throttle limits request rates: authenticated callers are counted per user,
// anonymous ones per client IP (the stricter anonymous limit applies to
// them). On authenticated routes it must be registered after the JWT
// middleware, which is what puts the user ID in the request context.
type Throttle struct {
	cacheSvc  caching.CacheService
	userLimit int
	anonLimit int
	window    time.Duration
}

func NewThrottle(cacheSvc caching.CacheService, userLimit, anonLimit int, window time.Duration) *Throttle {
	return &Throttle{
		cacheSvc:  cacheSvc,
		userLimit: userLimit,
		anonLimit: anonLimit,
		window:    window,
	}
}

func (t *Throttle) Limit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			key := fmt.Sprintf("anon:%s", c.RealIP())
			limit := t.anonLimit
			if userID, ok := common.GetUserIDFromContext(ctx); ok {
				key = fmt.Sprintf("user:%s", userID)
				limit = t.userLimit
			}

			limited, err := t.cacheSvc.IsRateLimited(ctx, key, limit, t.window)
			if err != nil {
				// A cache outage must not take the API down with it.
				log.Printf("Rate limit check failed for %s: %v", key, err)
				return next(c)
			}
			if limited {
				return echo.NewHTTPError(http.StatusTooManyRequests, "Request was throttled")
			}
			return next(c)
		}
	}
}
