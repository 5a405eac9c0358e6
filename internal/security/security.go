package security

import (
	"context"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// SecurityConfig holds security configuration
type SecurityConfig struct {
	MaxRequestsPerMin int           `json:"max_requests_per_min"`
	MaxBodyBytes      int64         `json:"max_body_bytes"`
	AllowedOrigins    []string      `json:"allowed_origins"`
	TrustedProxies    []string      `json:"trusted_proxies"`
	RequestTimeout    time.Duration `json:"request_timeout"`
}

// DefaultSecurityConfig returns secure defaults
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		MaxRequestsPerMin: 60,
		MaxBodyBytes:      16 * 1024,
		AllowedOrigins:    []string{"http://localhost:3000", "http://localhost:5173"},
		TrustedProxies:    []string{"127.0.0.1", "::1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"},
		RequestTimeout:    15 * time.Second,
	}
}

// SecurityMiddleware provides security middleware for the API surface
type SecurityMiddleware struct {
	config     SecurityConfig
	ipLimiters map[string]*rate.Limiter
	mu         sync.Mutex
}

// NewSecurityMiddleware creates a new security middleware instance
func NewSecurityMiddleware(config SecurityConfig) *SecurityMiddleware {
	sm := &SecurityMiddleware{
		config:     config,
		ipLimiters: make(map[string]*rate.Limiter),
	}

	go sm.cleanupLimiters()

	return sm
}

// cleanupLimiters drops idle per-IP limiters so the map cannot grow unbounded.
func (sm *SecurityMiddleware) cleanupLimiters() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		sm.mu.Lock()
		sm.ipLimiters = make(map[string]*rate.Limiter)
		sm.mu.Unlock()
	}
}

// limiterFor returns the per-IP limiter, creating it on first sight.
func (sm *SecurityMiddleware) limiterFor(ip string) *rate.Limiter {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	limiter, exists := sm.ipLimiters[ip]
	if !exists {
		perSecond := rate.Limit(float64(sm.config.MaxRequestsPerMin) / 60.0)
		limiter = rate.NewLimiter(perSecond, sm.config.MaxRequestsPerMin/6)
		sm.ipLimiters[ip] = limiter
	}

	return limiter
}

// SecurityHeaders adds security headers to all responses
func (sm *SecurityMiddleware) SecurityHeaders(c *gin.Context) {
	c.Header("X-Frame-Options", "DENY")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("X-XSS-Protection", "1; mode=block")
	c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
	c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

	if os.Getenv("ENABLE_HSTS") == "true" {
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
	}

	c.Next()
}

// RequestTimeout enforces a deadline on every request
func (sm *SecurityMiddleware) RequestTimeout(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), sm.config.RequestTimeout)
	defer cancel()

	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

// ValidateContentType rejects POST bodies that are not JSON and caps body size
func (sm *SecurityMiddleware) ValidateContentType(c *gin.Context) {
	if c.Request.Method == http.MethodPost || c.Request.Method == http.MethodPut {
		contentType := c.GetHeader("Content-Type")
		if !strings.HasPrefix(contentType, "application/json") {
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
				"error": "content type must be application/json",
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, sm.config.MaxBodyBytes)
	}

	c.Next()
}

// RateLimitByIP applies the per-IP request rate limit
func (sm *SecurityMiddleware) RateLimitByIP(c *gin.Context) {
	ip := c.ClientIP()

	if !sm.limiterFor(ip).Allow() {
		c.Header("Retry-After", "60")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": "rate limit exceeded",
		})
		return
	}

	c.Next()
}
