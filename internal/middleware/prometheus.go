package middleware

import (
	"strconv"
	"time"

	"filmorate/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Prometheus 记录请求数和耗时。路由按模板记录 (/films/:id)，避免标签基数膨胀
func Prometheus() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordAPIRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
