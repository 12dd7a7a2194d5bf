package handler

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/codepulse/backend/internal/service"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const authUserKey = "auth_user"

func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		loginID, err := authService.ParseAccessToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		c.Set(authUserKey, loginID)
		c.Next()
	}
}

func GetAuthUser(c *gin.Context) string {
	if value, ok := c.Get(authUserKey); ok {
		if loginID, ok := value.(string); ok {
			return loginID
		}
	}
	return ""
}

func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

const (
	// limiterIdleTTL 넘게 요청이 없던 IP의 버킷은 정리 대상이다
	limiterIdleTTL = 10 * time.Minute
	// 맵이 이 크기를 넘으면 새 IP 등록 시점에 idle 엔트리를 정리한다
	limiterSweepThreshold = 1024
)

type ipLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiters - 클라이언트 IP별 토큰 버킷 레지스트리
//
// 프로세스 수명 동안 무한히 자라지 않도록 idle 엔트리를 걷어낸다.
type ipLimiters struct {
	mu      sync.Mutex
	entries map[string]*ipLimiterEntry
	rps     float64
	burst   int
}

func newIPLimiters(rps float64, burst int) *ipLimiters {
	return &ipLimiters{
		entries: make(map[string]*ipLimiterEntry),
		rps:     rps,
		burst:   burst,
	}
}

func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	entry, ok := l.entries[ip]
	if !ok {
		if len(l.entries) >= limiterSweepThreshold {
			l.sweepLocked(now)
		}
		entry = &ipLimiterEntry{limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
		l.entries[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

func (l *ipLimiters) sweepLocked(now time.Time) {
	for ip, entry := range l.entries {
		if now.Sub(entry.lastSeen) > limiterIdleTTL {
			delete(l.entries, ip)
		}
	}
}

func (l *ipLimiters) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// RateLimitMiddleware - 클라이언트 IP별 토큰 버킷 제한
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	limiters := newIPLimiters(rps, burst)

	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}
