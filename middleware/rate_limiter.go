// middleware/rate_limiter.go
package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/localxp/localxp_backend/models"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type endpointLimit struct {
	limit rate.Limit
	burst int
}

// RateLimiter is a per-IP token bucket limiter. Exceeding the limit blocks
// the IP for blockDuration.
type RateLimiter struct {
	ips            map[string]*visitor
	blockedIPs     map[string]time.Time
	idleTTL        time.Duration
	mu             sync.Mutex
	defaultLimit   rate.Limit
	defaultBurst   int
	blockDuration  time.Duration
	endpointLimits map[string]endpointLimit
	now            func() time.Time
}

func NewRateLimiter() *RateLimiter {
	limiter := &RateLimiter{
		ips:            make(map[string]*visitor),
		blockedIPs:     make(map[string]time.Time),
		idleTTL:        10 * time.Minute,
		defaultLimit:   rate.Every(100 * time.Millisecond), // 10 requests per second
		defaultBurst:   20,
		blockDuration:  5 * time.Minute,
		endpointLimits: make(map[string]endpointLimit),
		now:            time.Now,
	}

	// Credential endpoints are limited strictly against brute force
	limiter.SetEndpointLimit("/api/auth/login", rate.Every(2*time.Second), 5)
	limiter.SetEndpointLimit("/api/auth/tourist/signup", rate.Every(500*time.Millisecond), 5)
	limiter.SetEndpointLimit("/api/auth/provider/signup", rate.Every(500*time.Millisecond), 5)
	limiter.SetEndpointLimit("/api/contact", rate.Every(time.Second), 5)

	return limiter
}

// SetEndpointLimit overrides the limit for a route path as registered in echo
func (r *RateLimiter) SetEndpointLimit(path string, limit rate.Limit, burst int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endpointLimits[path] = endpointLimit{limit: limit, burst: burst}
}

// Cleanup forgets expired blocks and limiters idle for longer than idleTTL
func (r *RateLimiter) Cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for ip, blockUntil := range r.blockedIPs {
		if now.After(blockUntil) {
			delete(r.blockedIPs, ip)
		}
	}
	for key, v := range r.ips {
		if now.Sub(v.lastSeen) > r.idleTTL {
			delete(r.ips, key)
		}
	}
}

func (r *RateLimiter) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ips)
}

func (r *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Static uploads are not limited
			if strings.HasPrefix(c.Request().URL.Path, "/Uploads/") {
				return next(c)
			}

			ip := c.RealIP()
			path := c.Path()

			r.mu.Lock()
			now := r.now()
			if blockUntil, blocked := r.blockedIPs[ip]; blocked {
				if now.Before(blockUntil) {
					r.mu.Unlock()
					return tooManyRequests(c, blockUntil)
				}
				delete(r.blockedIPs, ip)
			}

			cfg, ok := r.endpointLimits[path]
			if !ok {
				cfg = endpointLimit{limit: r.defaultLimit, burst: r.defaultBurst}
				path = "*"
			}
			key := ip + "|" + path
			v, exists := r.ips[key]
			if !exists {
				v = &visitor{limiter: rate.NewLimiter(cfg.limit, cfg.burst)}
				r.ips[key] = v
			}
			v.lastSeen = now

			if !v.limiter.AllowN(now, 1) {
				blockUntil := now.Add(r.blockDuration)
				r.blockedIPs[ip] = blockUntil
				delete(r.ips, key)
				r.mu.Unlock()
				c.Logger().Warnf("Rate limit exceeded for %s on %s", ip, c.Path())
				return tooManyRequests(c, blockUntil)
			}
			r.mu.Unlock()

			return next(c)
		}
	}
}

// IPExtractor returns the echo IP extractor used for rate limiting. Without
// trusted proxies the peer address is used and X-Forwarded-For is ignored.
// With them, X-Forwarded-For is honoured only for hops inside those ranges.
func IPExtractor(trustedProxies []string) (echo.IPExtractor, error) {
	if len(trustedProxies) == 0 {
		return echo.ExtractIPDirect(), nil
	}
	options := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trustedProxies {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy range %q: %w", cidr, err)
		}
		options = append(options, echo.TrustIPRange(ipNet))
	}
	return echo.ExtractIPFromXFFHeader(options...), nil
}

func tooManyRequests(c echo.Context, retryAt time.Time) error {
	c.Response().Header().Set("Retry-After", retryAt.UTC().Format(http.TimeFormat))
	return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
		Error:   "too many requests",
		Details: "retry after " + retryAt.UTC().Format(time.RFC3339),
	})
}
