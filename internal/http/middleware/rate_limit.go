package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Phaneesh28/project-backend/internal/http/response"
	"github.com/Phaneesh28/project-backend/internal/repository"
	"github.com/Phaneesh28/project-backend/pkg/logger"
)

// RateLimiter limits requests per client IP. A nil *RateLimiter lets every
// request through, which is how rate limiting is switched off.
type RateLimiter struct {
	repo     repository.RateLimitRepository
	requests int
	window   time.Duration
}

func NewRateLimiter(repo repository.RateLimitRepository, requests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		repo:     repo,
		requests: requests,
		window:   window,
	}
}

// Middleware returns the rate limiting middleware; scope keeps the counters
// of different routes apart.
func (rl *RateLimiter) Middleware(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rl == nil || rl.repo == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := scope + ":ip:" + getClientIP(r)

			allowed, err := rl.repo.CheckRateLimit(r.Context(), key, rl.requests, rl.window)
			if err != nil {
				// fail open
				logger.ErrorContext(r.Context(), "Rate limit check failed", "error", err)
			} else if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
				response.RateLimit(w, "Too many requests. Try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP extracts the real client IP from the request
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
