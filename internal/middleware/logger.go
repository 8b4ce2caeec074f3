package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/huellas-salud/vet-api/pkg/logger"
)

// Logger logs one line per request, level-tiered by status.
func Logger(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		event := l.Zerolog().Info()
		switch {
		case status >= 500:
			event = l.Zerolog().Error()
		case status >= 400:
			event = l.Zerolog().Warn()
		}

		event.
			Str("request_id", c.GetString(ContextRequestID)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}
