package http

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/givehub/server/internal/common/constants"
	"github.com/givehub/server/internal/common/session"
	"github.com/givehub/server/internal/observability/metrics"
)

type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
	cleanup  *time.Ticker
}

func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		cleanup:  time.NewTicker(constants.RateLimitCleanupInterval),
	}

	go rl.cleanupLimiters()

	return rl
}

func (rl *RateLimiter) cleanupLimiters() {
	for range rl.cleanup.C {
		rl.mu.Lock()
		for key, limiter := range rl.limiters {
			if limiter.Tokens() >= float64(rl.burst) {
				delete(rl.limiters, key)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[key]
	rl.mu.RUnlock()

	if !exists {
		rl.mu.Lock()
		limiter, exists = rl.limiters[key]
		if !exists {
			limiter = rate.NewLimiter(rl.rate, rl.burst)
			rl.limiters[key] = limiter
		}
		rl.mu.Unlock()
	}

	return limiter
}

func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// StrictRateLimiter applies tighter buckets to credential endpoints and
// write endpoints than to plain reads, keyed per client.
type StrictRateLimiter struct {
	registerLimiter *RateLimiter
	loginLimiter    *RateLimiter
	writeLimiter    *RateLimiter
	generalLimiter  *RateLimiter
}

func NewStrictRateLimiter() *StrictRateLimiter {
	return &StrictRateLimiter{
		registerLimiter: NewRateLimiter(constants.RateLimitRegisterRequestsPerSecond, constants.RateLimitRegisterBurst),
		loginLimiter:    NewRateLimiter(constants.RateLimitLoginRequestsPerSecond, constants.RateLimitLoginBurst),
		writeLimiter:    NewRateLimiter(constants.RateLimitWriteRequestsPerSecond, constants.RateLimitWriteBurst),
		generalLimiter:  NewRateLimiter(constants.RateLimitGeneralRequestsPerSecond, constants.RateLimitGeneralBurst),
	}
}

func (srl *StrictRateLimiter) limiterFor(method, path string) (*RateLimiter, string) {
	switch path {
	case "/register", "/api/auth/register":
		if method == http.MethodPost {
			return srl.registerLimiter, "register"
		}
	case "/login", "/api/auth/login":
		if method == http.MethodPost {
			return srl.loginLimiter, "login"
		}
	case "/needs", "/donate", "/api/needs", "/api/donations":
		if method == http.MethodPost {
			return srl.writeLimiter, "write"
		}
	}
	return srl.generalLimiter, "general"
}

func (srl *StrictRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter, limiterType := srl.limiterFor(r.Method, r.URL.Path)

		if !limiter.Allow(getClientKey(r)) {
			metrics.RateLimitBlocked.WithLabelValues(r.URL.Path, limiterType).Inc()
			WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func getClientKey(r *http.Request) string {
	if claims, ok := session.FromContext(r.Context()); ok && claims.UserID != "" {
		return claims.UserID
	}
	return GetClientIP(r)
}
