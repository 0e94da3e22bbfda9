package httpmiddleware

import (
	"chauffeur.local/gee"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TraceName 用路由模板重命名 otelhttp 创建的 span，并带上请求 ID。
func TraceName() gee.HandlerFunc {
	return func(ctx *gee.Context) {
		span := trace.SpanFromContext(ctx.Req.Context())
		route := ctx.RoutePattern
		if route == "" {
			route = "UNMATCHED"
		}
		span.SetName(ctx.Method + " " + route)
		if id := ctx.Req.Header.Get("X-Request-ID"); id != "" {
			span.SetAttributes(attribute.String("http.request_id", id))
		}
		ctx.Next()
	}
}
