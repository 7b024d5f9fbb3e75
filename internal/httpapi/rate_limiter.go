package httpapi

import (
	"github.com/labstack/echo/v4"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
	"net/http"
	"sync"
	"time"
)

const limiterIdleTTL = 10 * time.Minute

// RateLimiter gives every client IP a token bucket of perMinute requests refilled over a minute.
// Buckets of idle clients expire from the cache. Zero disables limiting.
func RateLimiter(perMinute int) echo.MiddlewareFunc {
	if perMinute <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	var (
		mu       sync.Mutex
		limiters = gocache.New(limiterIdleTTL, 2*limiterIdleTTL)
		refill   = rate.Every(time.Minute / time.Duration(perMinute))
	)

	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		limiter, ok := limiters.Get(key)
		if !ok {
			limiter = rate.NewLimiter(refill, perMinute)
		}
		limiters.Set(key, limiter, gocache.DefaultExpiration)
		return limiter.(*rate.Limiter)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiterFor(c.RealIP()).Allow() {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
