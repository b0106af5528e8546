package httpapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// userRateLimiter keeps one token bucket per user for paid endpoints.
type userRateLimiter struct {
	mutex     sync.Mutex
	limit     rate.Limit
	burst     int
	entries   map[string]*limiterEntry
	lastPrune time.Time
	now       func() time.Time
}

func newUserRateLimiter(requestsPerMinute float64, burst int, now func() time.Time) *userRateLimiter {
	return &userRateLimiter{
		limit:   rate.Limit(requestsPerMinute / 60.0),
		burst:   burst,
		entries: make(map[string]*limiterEntry),
		now:     now,
	}
}

func (limiter *userRateLimiter) allow(userID string) bool {
	limiter.mutex.Lock()
	defer limiter.mutex.Unlock()
	now := limiter.now()
	if now.Sub(limiter.lastPrune) > limiterIdleTTL {
		for key, entry := range limiter.entries {
			if now.Sub(entry.lastSeen) > limiterIdleTTL {
				delete(limiter.entries, key)
			}
		}
		limiter.lastPrune = now
	}
	entry, ok := limiter.entries[userID]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.entries[userID] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

func (limiter *userRateLimiter) middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims := getClaims(ctx)
		if claims == nil {
			ctx.Next()
			return
		}
		if !limiter.allow(claims.GetUserID()) {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse(errorCodeRateLimited, "too many paid requests"))
			return
		}
		ctx.Next()
	}
}
