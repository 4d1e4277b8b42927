package middleware

import (
	"sync"
	"time"
)

// RateLimiter implements a simple in-memory fixed-window limiter for the
// admin API, keyed by client IP.
type RateLimiter struct {
	ipLimits map[string]*ipLimit
	mu       sync.Mutex

	ipMaxRequests int
	window        time.Duration
}

type ipLimit struct {
	requests  int
	resetTime time.Time
}

func NewRateLimiter(ipMaxRequests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		ipLimits:      make(map[string]*ipLimit),
		ipMaxRequests: ipMaxRequests,
		window:        window,
	}

	go rl.cleanup()

	return rl
}

// Allow reports whether the IP may make another request in the current
// window.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	limit, exists := rl.ipLimits[ip]
	if !exists || now.After(limit.resetTime) {
		rl.ipLimits[ip] = &ipLimit{
			requests:  1,
			resetTime: now.Add(rl.window),
		}
		return true
	}

	if limit.requests >= rl.ipMaxRequests {
		return false
	}

	limit.requests++
	return true
}

// Remaining returns how many requests the IP has left in the current window.
func (rl *RateLimiter) Remaining(ip string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limit, exists := rl.ipLimits[ip]
	if !exists || time.Now().After(limit.resetTime) {
		return rl.ipMaxRequests
	}

	remaining := rl.ipMaxRequests - limit.requests
	if remaining < 0 {
		return 0
	}
	return remaining
}

// cleanup removes expired entries
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, limit := range rl.ipLimits {
			if now.After(limit.resetTime) {
				delete(rl.ipLimits, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// Reset clears all limits (useful for testing)
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.ipLimits = make(map[string]*ipLimit)
}
