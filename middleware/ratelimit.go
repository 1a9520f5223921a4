package middleware

import (
	"net/http"
	"sync"
	"time"

	"newhire-onboarding-api/services"

	"github.com/gin-gonic/gin"
)

const (
	loginAttemptLimit  = 10
	loginAttemptWindow = 5 * time.Minute
)

type attemptWindow struct {
	count   int
	resetAt time.Time
}

// loginLimiter holds per-client attempt counters in memory. Counters reset on
// process restart, which is acceptable for brute-force protection.
type loginLimiter struct {
	mu      sync.Mutex
	clients map[string]*attemptWindow
	now     func() time.Time
}

func newLoginLimiter() *loginLimiter {
	return &loginLimiter{
		clients: make(map[string]*attemptWindow),
		now:     time.Now,
	}
}

// allow records one attempt for the client and reports whether it is within
// the fixed window budget.
func (l *loginLimiter) allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.clients[client]
	if !ok || now.After(w.resetAt) {
		l.clients[client] = &attemptWindow{count: 1, resetAt: now.Add(loginAttemptWindow)}
		return true
	}

	w.count++
	return w.count <= loginAttemptLimit
}

// RateLimitLogin caps login attempts per client address. The limit applies
// before credential checking, so the 11th attempt in a window fails even with
// a correct password.
func RateLimitLogin() gin.HandlerFunc {
	limiter := newLoginLimiter()
	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": services.ErrRateLimited.Error()})
			c.Abort()
			return
		}
		c.Next()
	}
}
