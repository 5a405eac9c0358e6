package monitoring

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds application metrics
type Metrics struct {
	RequestCount   int64
	ErrorCount     int64
	CacheHits      int64
	CacheMisses    int64
	ScoresComputed int64
	ProductsServed int64
	StartTime      time.Time

	// Response time samples for percentile reporting
	ResponseTimes      []time.Duration
	ResponseTimesMutex sync.RWMutex

	// Status code tracking
	RequestCountByStatus map[int]int64
	StatusMutex          sync.RWMutex
}

// maxResponseSamples bounds the percentile sample window.
const maxResponseSamples = 1000

// NewMetrics creates a new metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime:            time.Now(),
		ResponseTimes:        make([]time.Duration, 0, maxResponseSamples),
		RequestCountByStatus: make(map[int]int64),
	}
}

// IncrementRequest increments the request count
func (m *Metrics) IncrementRequest() {
	atomic.AddInt64(&m.RequestCount, 1)
}

// IncrementError increments the error count
func (m *Metrics) IncrementError() {
	atomic.AddInt64(&m.ErrorCount, 1)
}

// IncrementCacheHit increments cache hit count
func (m *Metrics) IncrementCacheHit() {
	atomic.AddInt64(&m.CacheHits, 1)
}

// IncrementCacheMiss increments cache miss count
func (m *Metrics) IncrementCacheMiss() {
	atomic.AddInt64(&m.CacheMisses, 1)
}

// IncrementScoresComputed increments the number of score computations
func (m *Metrics) IncrementScoresComputed() {
	atomic.AddInt64(&m.ScoresComputed, 1)
}

// IncrementProductsServed increments the number of catalog reads
func (m *Metrics) IncrementProductsServed() {
	atomic.AddInt64(&m.ProductsServed, 1)
}

// RecordResponseTime records a response time sample
func (m *Metrics) RecordResponseTime(d time.Duration) {
	m.ResponseTimesMutex.Lock()
	defer m.ResponseTimesMutex.Unlock()

	if len(m.ResponseTimes) >= maxResponseSamples {
		// Drop the oldest half to keep recording cheap
		copy(m.ResponseTimes, m.ResponseTimes[maxResponseSamples/2:])
		m.ResponseTimes = m.ResponseTimes[:maxResponseSamples/2]
	}
	m.ResponseTimes = append(m.ResponseTimes, d)
}

// RecordRequestByStatus records a request by its status code
func (m *Metrics) RecordRequestByStatus(statusCode int) {
	m.StatusMutex.Lock()
	defer m.StatusMutex.Unlock()

	m.RequestCountByStatus[statusCode]++
}

// percentile returns the p-th percentile of sorted durations.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx]
}

// GetStats returns a snapshot of all metrics
func (m *Metrics) GetStats() map[string]interface{} {
	m.ResponseTimesMutex.RLock()
	samples := append([]time.Duration(nil), m.ResponseTimes...)
	m.ResponseTimesMutex.RUnlock()

	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })

	m.StatusMutex.RLock()
	byStatus := make(map[int]int64, len(m.RequestCountByStatus))
	for code, count := range m.RequestCountByStatus {
		byStatus[code] = count
	}
	m.StatusMutex.RUnlock()

	cacheHits := atomic.LoadInt64(&m.CacheHits)
	cacheMisses := atomic.LoadInt64(&m.CacheMisses)
	hitRate := float64(0)
	if cacheHits+cacheMisses > 0 {
		hitRate = float64(cacheHits) / float64(cacheHits+cacheMisses)
	}

	return map[string]interface{}{
		"request_count":      atomic.LoadInt64(&m.RequestCount),
		"error_count":        atomic.LoadInt64(&m.ErrorCount),
		"cache_hits":         cacheHits,
		"cache_misses":       cacheMisses,
		"cache_hit_rate":     hitRate,
		"scores_computed":    atomic.LoadInt64(&m.ScoresComputed),
		"products_served":    atomic.LoadInt64(&m.ProductsServed),
		"requests_by_status": byStatus,
		"response_time_p50_ms": percentile(samples, 0.50).Milliseconds(),
		"response_time_p95_ms": percentile(samples, 0.95).Milliseconds(),
		"response_time_p99_ms": percentile(samples, 0.99).Milliseconds(),
		"uptime_seconds":       time.Since(m.StartTime).Seconds(),
	}
}
