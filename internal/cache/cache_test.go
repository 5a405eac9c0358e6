package cache

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmcassidy/Quantifying-sustainability-in-fashion/internal/monitoring"
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache(time.Minute)

	c.Set("key", []byte("value"))

	data, found := c.Get("key")
	require.True(t, found)
	assert.Equal(t, []byte("value"), data)

	_, found = c.Get("missing")
	assert.False(t, found)
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(10 * time.Millisecond)

	c.Set("key", []byte("value"))
	time.Sleep(20 * time.Millisecond)

	_, found := c.Get("key")
	assert.False(t, found)
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := NewCache(time.Minute)

	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	assert.Equal(t, 2, c.Size())

	c.Delete("a")
	assert.Equal(t, 1, c.Size())

	c.Clear()
	assert.Equal(t, 0, c.Size())
}

func TestCacheStats(t *testing.T) {
	c := NewCache(time.Minute)

	c.Set("a", []byte("1"))

	stats := c.Stats()
	assert.Equal(t, 1, stats["total_items"])
	assert.Equal(t, 0, stats["expired_items"])
	assert.Equal(t, float64(60), stats["ttl_seconds"])
}

func TestMiddleware_CachesScoreResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c := NewCache(time.Minute)
	metrics := monitoring.NewMetrics()

	calls := 0
	r := gin.New()
	r.Use(c.Middleware(metrics))
	r.POST("/api/score", func(ctx *gin.Context) {
		calls++
		ctx.JSON(http.StatusOK, gin.H{"final_score": 90})
	})

	body := `{"certification_bonus": 2}`

	doPost := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/score", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	first := doPost()
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, 1, calls)

	second := doPost()
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 1, calls, "second identical request must hit the cache")
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats["cache_hits"])
	assert.Equal(t, int64(1), stats["cache_misses"])
}

func TestMiddleware_DoesNotCacheErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c := NewCache(time.Minute)
	metrics := monitoring.NewMetrics()

	calls := 0
	r := gin.New()
	r.Use(c.Middleware(metrics))
	r.POST("/api/score", func(ctx *gin.Context) {
		calls++
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "bad input"})
	})

	body := `{"material_impact": {"co2": -1}}`

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/score", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	assert.Equal(t, 2, calls, "error responses must not be served from cache")
}

func TestMiddleware_IgnoresOtherRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c := NewCache(time.Minute)
	metrics := monitoring.NewMetrics()

	r := gin.New()
	r.Use(c.Middleware(metrics))
	r.GET("/api/products", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"products": []string{}})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/products", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, c.Size())

	stats := metrics.GetStats()
	assert.Equal(t, int64(0), stats["cache_hits"])
	assert.Equal(t, int64(0), stats["cache_misses"])
}
