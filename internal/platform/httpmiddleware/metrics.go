package httpmiddleware

import (
	"strconv"
	"time"

	"chauffeur.local/gee"
	"chauffeur.local/internal/platform/metrics"
)

// Metrics 记录请求数、耗时和并发数。route 取路由模板，未匹配的请求记为 UNMATCHED。
func Metrics() gee.HandlerFunc {
	return func(ctx *gee.Context) {
		start := time.Now()
		metrics.HTTPInflightRequests.Inc()
		defer func() {
			metrics.HTTPInflightRequests.Dec()
			route := ctx.RoutePattern
			if route == "" {
				route = "UNMATCHED"
			}
			metrics.HTTPRequestsTotal.WithLabelValues(ctx.Method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
			metrics.HTTPRequestDurationSeconds.WithLabelValues(ctx.Method, route).Observe(time.Since(start).Seconds())
		}()
		ctx.Next()
	}
}
