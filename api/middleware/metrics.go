package middleware

import (
	"time"

	"github.com/OldStager01/battery-health/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency by route pattern, not raw path,
// to keep label cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
