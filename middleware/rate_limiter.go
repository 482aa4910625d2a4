package middleware

import (
	"net/http"
	"sync"
	"time"

	"voicedesk/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultRequestsPerMin = 100
	limiterIdleTTL        = 10 * time.Minute
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore tracks one token bucket per caller IP. Entries idle past
// limiterIdleTTL are pruned so the map stays bounded.
type limiterStore struct {
	mu      sync.Mutex
	byIP    map[string]*ipLimiter
	pruneAt time.Time
}

var store = &limiterStore{byIP: make(map[string]*ipLimiter)}

func (s *limiterStore) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if now.After(s.pruneAt) {
		for k, v := range s.byIP {
			if now.Sub(v.lastSeen) > limiterIdleTTL {
				delete(s.byIP, k)
			}
		}
		s.pruneAt = now.Add(limiterIdleTTL)
	}

	entry, ok := s.byIP[ip]
	if !ok {
		perMin := config.AppConfig.MaxRequestsPerMin
		if perMin <= 0 {
			perMin = defaultRequestsPerMin
		}
		entry = &ipLimiter{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), perMin),
		}
		s.byIP[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// RateLimitMiddleware rejects callers that exceed the configured
// per-minute request budget for their IP.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := getClientIP(c)
		if !store.get(ip).Allow() {
			zap.L().Warn("rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Try again later.",
			})
			return
		}
		c.Next()
	}
}
