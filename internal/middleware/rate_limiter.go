package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/huellas-salud/vet-api/pkg/httputil"
)

// RateLimit applies a global token-bucket limit. The clinic front desk is
// effectively the only client, so a per-IP limiter map is not worth its
// bookkeeping.
func RateLimit(r rate.Limit, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(r, burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httputil.Response{
				Error: &httputil.Error{
					Code:    http.StatusTooManyRequests,
					Message: "too many requests",
				},
			})
			return
		}
		c.Next()
	}
}
