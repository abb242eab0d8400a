package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimitRule bounds request counts per client within a fixed window.
type RateLimitRule struct {
	Window time.Duration
	Max    int
}

// RateLimitConfig configures the fixed-window rate limit middleware.
type RateLimitConfig struct {
	Rule    RateLimitRule
	Message string
	Limiter *RateLimiter
}

// RateLimiter counts requests per key in fixed windows.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*rateWindow
	now     func() time.Time
}

type rateWindow struct {
	start time.Time
	count int
}

// NewRateLimiter constructs a limiter; now may be nil for wall-clock time.
func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		windows: make(map[string]*rateWindow),
		now:     now,
	}
}

// RateLimit rejects requests from a source IP once it exceeds the rule's cap
// within the current window.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		cfg.Limiter = NewRateLimiter(nil)
	}
	if cfg.Message == "" {
		cfg.Message = "Too many requests, please try again later"
	}
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.ClientIP())
		allowed, retryAfter := cfg.Limiter.Allow(key, cfg.Rule)
		if allowed {
			c.Next()
			return
		}
		retryAfterSeconds := int(math.Ceil(retryAfter.Seconds()))
		if retryAfterSeconds <= 0 {
			retryAfterSeconds = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": cfg.Message,
		})
		c.Abort()
	}
}

// Allow reports whether the request fits in the key's current window and, when
// it does not, how long until the window resets.
func (l *RateLimiter) Allow(key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil {
		return true, 0
	}
	if rule.Window <= 0 || rule.Max <= 0 {
		return true, 0
	}
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	win, ok := l.windows[key]
	if !ok || now.Sub(win.start) >= rule.Window {
		win = &rateWindow{start: now}
		l.windows[key] = win
	}
	if win.count < rule.Max {
		win.count++
		return true, 0
	}
	retryAfter := rule.Window - now.Sub(win.start)
	if retryAfter < 0 {
		retryAfter = 0
	}
	return false, retryAfter
}
