package middleware

import (
	"github.com/gin-gonic/gin"

	"tripbook/internal/metrics"
)

// Metrics records HTTP metrics labelled by route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		done := metrics.RequestStarted()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		done(c.Request.Method, path, c.Writer.Status())
	}
}
