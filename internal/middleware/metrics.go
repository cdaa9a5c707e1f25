package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eladkar/semester-planner-api/internal/service"
)

// Metrics records per-request latency and status counts. Routes are
// labelled by their pattern so path parameters do not explode the
// metric cardinality.
func Metrics(metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
