package middleware

import (
	"compress/gzip"
	"io"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// CompressionConfig holds configuration for response compression
type CompressionConfig struct {
	MinSize      int      // Minimum response size to compress (bytes)
	Level        int      // Gzip compression level (1-9)
	ContentTypes []string // Content types to compress
}

// DefaultCompressionConfig returns the default compression configuration
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		MinSize: 1024,
		Level:   gzip.DefaultCompression,
		ContentTypes: []string{
			"application/json",
			"text/plain",
			"text/html",
			"text/css",
			"application/javascript",
		},
	}
}

// CompressionMiddleware provides gzip compression for HTTP responses
type CompressionMiddleware struct {
	config CompressionConfig
	stats  *CompressionStats
	pool   sync.Pool
}

// NewCompressionMiddleware creates a new compression middleware
func NewCompressionMiddleware(config CompressionConfig) *CompressionMiddleware {
	cm := &CompressionMiddleware{
		config: config,
		stats:  &CompressionStats{},
	}
	cm.pool = sync.Pool{
		New: func() interface{} {
			gz, _ := gzip.NewWriterLevel(io.Discard, config.Level)
			return gz
		},
	}
	return cm
}

// Handler returns a Gin middleware that gzips eligible responses
func (cm *CompressionMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		gzw := &gzipResponseWriter{
			ResponseWriter: c.Writer,
			middleware:     cm,
		}
		c.Writer = gzw
		defer gzw.Close()

		c.Next()
	}
}

// shouldCompress checks if the content type should be compressed
func (cm *CompressionMiddleware) shouldCompress(contentType string) bool {
	for _, ct := range cm.config.ContentTypes {
		if strings.Contains(contentType, ct) {
			return true
		}
	}
	return false
}

// GetStats returns compression statistics
func (cm *CompressionMiddleware) GetStats() map[string]interface{} {
	return cm.stats.GetStats()
}

// gzipResponseWriter wraps gin.ResponseWriter and decides on first write
// whether the response is worth compressing.
type gzipResponseWriter struct {
	gin.ResponseWriter
	middleware *CompressionMiddleware
	gzipWriter *gzip.Writer
	decided    bool
	rawBytes   int64
}

func (gzw *gzipResponseWriter) Write(data []byte) (int, error) {
	gzw.rawBytes += int64(len(data))

	if !gzw.decided {
		gzw.decided = true

		contentType := gzw.Header().Get("Content-Type")
		if len(data) >= gzw.middleware.config.MinSize && gzw.middleware.shouldCompress(contentType) {
			gzw.Header().Set("Content-Encoding", "gzip")
			gzw.Header().Set("Vary", "Accept-Encoding")
			gzw.Header().Del("Content-Length")

			gz := gzw.middleware.pool.Get().(*gzip.Writer)
			gz.Reset(gzw.ResponseWriter)
			gzw.gzipWriter = gz
		}
	}

	if gzw.gzipWriter != nil {
		n, err := gzw.gzipWriter.Write(data)
		return n, err
	}
	return gzw.ResponseWriter.Write(data)
}

func (gzw *gzipResponseWriter) WriteString(s string) (int, error) {
	return gzw.Write([]byte(s))
}

// Close flushes the gzip stream and records stats
func (gzw *gzipResponseWriter) Close() {
	compressed := gzw.gzipWriter != nil
	if compressed {
		gzw.gzipWriter.Close()
		gzw.middleware.pool.Put(gzw.gzipWriter)
		gzw.gzipWriter = nil
	}
	gzw.middleware.stats.RecordRequest(gzw.rawBytes, int64(gzw.ResponseWriter.Size()), compressed)
}

// CompressionStats tracks compression statistics
type CompressionStats struct {
	TotalRequests      int64
	CompressedRequests int64
	TotalBytes         int64
	CompressedBytes    int64
	mutex              sync.RWMutex
}

// RecordRequest records a request's compression stats
func (cs *CompressionStats) RecordRequest(originalSize, compressedSize int64, compressed bool) {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	cs.TotalRequests++
	cs.TotalBytes += originalSize

	if compressed {
		cs.CompressedRequests++
		cs.CompressedBytes += compressedSize
	}
}

// GetStats returns current compression statistics
func (cs *CompressionStats) GetStats() map[string]interface{} {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	compressionRatio := float64(0)
	if cs.TotalBytes > 0 {
		compressionRatio = float64(cs.CompressedBytes) / float64(cs.TotalBytes)
	}

	return map[string]interface{}{
		"total_requests":      cs.TotalRequests,
		"compressed_requests": cs.CompressedRequests,
		"total_bytes":         cs.TotalBytes,
		"compressed_bytes":    cs.CompressedBytes,
		"compression_ratio":   compressionRatio,
	}
}
