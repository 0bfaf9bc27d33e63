package middleware

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter caps the number of requests a single IP may make per window.
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string]int
	limit    int
	window   time.Duration
}

// NewRateLimiter creates a limiter allowing limit requests per window per IP
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string]int),
		limit:    limit,
		window:   window,
	}
}

// Middleware rejects requests over the limit with 429
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr

		rl.mu.Lock()
		if rl.requests[ip] >= rl.limit {
			rl.mu.Unlock()
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		rl.requests[ip]++
		rl.mu.Unlock()

		time.AfterFunc(rl.window, func() {
			rl.mu.Lock()
			defer rl.mu.Unlock()
			rl.requests[ip]--
		})

		next.ServeHTTP(w, r)
	})
}
