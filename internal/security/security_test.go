package security

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSecurityConfig(t *testing.T) {
	config := DefaultSecurityConfig()

	assert.Equal(t, 60, config.MaxRequestsPerMin)
	assert.Equal(t, int64(16*1024), config.MaxBodyBytes)
	assert.Contains(t, config.AllowedOrigins, "http://localhost:3000")
	assert.Contains(t, config.AllowedOrigins, "http://localhost:5173")
	assert.Equal(t, 15*time.Second, config.RequestTimeout)
}

func TestSecurityHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sm := NewSecurityMiddleware(DefaultSecurityConfig())

	r := gin.New()
	r.Use(sm.SecurityHeaders)
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
}

func TestValidateContentType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sm := NewSecurityMiddleware(DefaultSecurityConfig())

	r := gin.New()
	r.Use(sm.ValidateContentType)
	r.POST("/test", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name           string
		method         string
		contentType    string
		expectedStatus int
	}{
		{
			name:           "POST with JSON accepted",
			method:         "POST",
			contentType:    "application/json",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "POST with JSON and charset accepted",
			method:         "POST",
			contentType:    "application/json; charset=utf-8",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "POST with plain text rejected",
			method:         "POST",
			contentType:    "text/plain",
			expectedStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:           "POST without content type rejected",
			method:         "POST",
			contentType:    "",
			expectedStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:           "GET skips content type check",
			method:         "GET",
			contentType:    "",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(tt.method, "/test", bytes.NewBufferString("{}"))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestValidateContentType_BodySizeLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	config := DefaultSecurityConfig()
	config.MaxBodyBytes = 64
	sm := NewSecurityMiddleware(config)

	r := gin.New()
	r.Use(sm.ValidateContentType)
	r.POST("/test", func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.AbortWithStatus(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	oversized := `{"padding": "` + strings.Repeat("x", 128) + `"}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/test", bytes.NewBufferString(oversized))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	config := DefaultSecurityConfig()
	config.MaxRequestsPerMin = 6 // burst of 1
	sm := NewSecurityMiddleware(config)

	r := gin.New()
	r.Use(sm.RateLimitByIP)
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	r.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))
}

func TestCSPMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CSPMiddleware())
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetNonce(c))
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	nonce := w.Body.String()
	assert.NotEmpty(t, nonce)

	policy := w.Header().Get("Content-Security-Policy")
	assert.Contains(t, policy, "nonce-"+nonce)
	assert.Contains(t, policy, "default-src 'self'")
}

func TestGenerateNonce_Unique(t *testing.T) {
	a, err := GenerateNonce()
	assert.NoError(t, err)

	b, err := GenerateNonce()
	assert.NoError(t, err)

	assert.NotEqual(t, a, b)
}
