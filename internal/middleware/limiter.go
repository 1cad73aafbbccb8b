package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// Rate limit tiers. Credential endpoints get the strict budget; browsing
// and cart traffic the general one.
const (
	limitStrict = rate.Limit(2)
	burstStrict = 5

	limitGeneral = rate.Limit(10)
	burstGeneral = 20
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps a token bucket per client identity and tier.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{visitors: make(map[string]*visitor)}
	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		rl.visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanup drops buckets idle for more than three minutes so the map does
// not grow without bound.
func (rl *RateLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)

		rl.mu.Lock()
		for key, v := range rl.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(rl.visitors, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Middleware enforces the tier budget for each request. Authenticated
// requests are keyed by user id so a shared NAT does not starve users;
// anonymous ones fall back to the client IP.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			limit, burst, tier := resolveRateTier(c)

			var identity string
			if userID, ok := CurrentUserID(c); ok {
				identity = fmt.Sprintf("user:%d", userID)
			} else {
				identity = "ip:" + c.RealIP()
			}

			key := fmt.Sprintf("%s:%s", identity, tier)
			if !rl.getVisitor(key, limit, burst).Allow() {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"message": "Too many requests. Please slow down.",
				})
			}

			return next(c)
		}
	}
}

func resolveRateTier(c echo.Context) (rate.Limit, int, string) {
	p := c.Path()
	if p == "" {
		p = c.Request().URL.Path
	}

	switch {
	case p == "/api/signup", p == "/api/login", strings.HasPrefix(p, "/api/password"):
		return limitStrict, burstStrict, "strict"
	default:
		return limitGeneral, burstGeneral, "general"
	}
}
