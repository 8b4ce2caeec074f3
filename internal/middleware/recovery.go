package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huellas-salud/vet-api/pkg/logger"
)

// Recovery converts panics into 500 responses instead of dropped
// connections.
func Recovery(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				l.Error(fmt.Errorf("%v", r), "panic recovered",
					map[string]interface{}{
						"request_id": c.GetString(ContextRequestID),
						"path":       c.Request.URL.Path,
					})
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
				})
			}
		}()
		c.Next()
	}
}
