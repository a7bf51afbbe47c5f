package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Rohan-debug788/SkillSwap/pkg/errors"
	"github.com/Rohan-debug788/SkillSwap/pkg/utils"
	"github.com/gin-gonic/gin"
)

// RateLimiter is an in-memory fixed-window limiter keyed by user and by IP.
type RateLimiter struct {
	userLimits map[string]*windowCount
	ipLimits   map[string]*windowCount
	mu         sync.Mutex

	userMaxRequests int
	ipMaxRequests   int
	window          time.Duration
	stop            chan struct{}
	stopOnce        sync.Once
}

type windowCount struct {
	requests  int
	resetTime time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(userMaxRequests, ipMaxRequests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		userLimits:      make(map[string]*windowCount),
		ipLimits:        make(map[string]*windowCount),
		userMaxRequests: userMaxRequests,
		ipMaxRequests:   ipMaxRequests,
		window:          window,
		stop:            make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// CheckUserLimit checks if user has exceeded rate limit
func (rl *RateLimiter) CheckUserLimit(userID string) bool {
	return rl.check(rl.userLimits, userID, rl.userMaxRequests)
}

// CheckIPLimit checks if IP has exceeded rate limit
func (rl *RateLimiter) CheckIPLimit(ip string) bool {
	return rl.check(rl.ipLimits, ip, rl.ipMaxRequests)
}

func (rl *RateLimiter) check(limits map[string]*windowCount, key string, max int) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	limit, exists := limits[key]
	if !exists || now.After(limit.resetTime) {
		limits[key] = &windowCount{
			requests:  1,
			resetTime: now.Add(rl.window),
		}
		return true
	}

	if limit.requests >= max {
		return false
	}

	limit.requests++
	return true
}

// GetUserRemaining returns remaining requests for user
func (rl *RateLimiter) GetUserRemaining(userID string) int {
	return rl.remaining(rl.userLimits, userID, rl.userMaxRequests)
}

// GetIPRemaining returns remaining requests for IP
func (rl *RateLimiter) GetIPRemaining(ip string) int {
	return rl.remaining(rl.ipLimits, ip, rl.ipMaxRequests)
}

func (rl *RateLimiter) remaining(limits map[string]*windowCount, key string, max int) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limit, exists := limits[key]
	if !exists || time.Now().After(limit.resetTime) {
		return max
	}

	remaining := max - limit.requests
	if remaining < 0 {
		return 0
	}
	return remaining
}

// cleanup removes expired entries
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for key, limit := range rl.userLimits {
				if now.After(limit.resetTime) {
					delete(rl.userLimits, key)
				}
			}
			for key, limit := range rl.ipLimits {
				if now.After(limit.resetTime) {
					delete(rl.ipLimits, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Close stops the cleanup goroutine
func (rl *RateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Reset clears all rate limits (useful for testing)
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.userLimits = make(map[string]*windowCount)
	rl.ipLimits = make(map[string]*windowCount)
}

// IPRateLimit rejects clients that exceed the per-IP limit.
func IPRateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.CheckIPLimit(ip) {
			tooManyRequests(c, rl.GetIPRemaining(ip))
			return
		}
		c.Next()
	}
}

// UserRateLimit rejects authenticated users that exceed the per-user limit.
// It must run after Auth.
func UserRateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := CurrentUserID(c)
		if userID == "" {
			c.Next()
			return
		}
		if !rl.CheckUserLimit(userID) {
			tooManyRequests(c, rl.GetUserRemaining(userID))
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(rl.GetUserRemaining(userID)))
		c.Next()
	}
}

func tooManyRequests(c *gin.Context, remaining int) {
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	utils.Error(c, http.StatusTooManyRequests, errors.ErrCodeRateLimitExceeded, "Too many requests")
	c.Abort()
}
