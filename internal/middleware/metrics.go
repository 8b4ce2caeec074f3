package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/huellas-salud/vet-api/pkg/metrics"
)

// Metrics records request counts, durations and error totals, labelled by
// route template rather than raw path to keep cardinality bounded.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.RequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		if c.Writer.Status() >= 500 {
			m.ErrorTotal.WithLabelValues(c.Request.Method, path).Inc()
		}
	}
}
