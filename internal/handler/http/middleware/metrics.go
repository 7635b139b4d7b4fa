// File: internal/handler/http/middleware/metrics.go
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/apurv-1/RC4Community/internal/utils/metrics"
)

// MetricsMiddleware records request counters and latency histograms.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.RequestsTotal.Inc()

		start := time.Now()
		c.Next()
		duration := time.Since(start).Seconds()

		metrics.ResponsesTotal.WithLabelValues(strconv.Itoa(c.Writer.Status())).Inc()
		metrics.RequestDuration.Observe(duration)
	}
}
