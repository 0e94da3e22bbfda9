package httpapi

import (
	"time"

	"chauffeur.local/gee"
	"chauffeur.local/internal/platform/httpmiddleware"
	"chauffeur.local/internal/platform/ratelimit"
)

// RegisterAPIRoutes 在给定分组（例如 /api/v1）下挂载分享链接相关路由。
//
// 本包只做传输层：参数校验、错误映射、响应格式；改写逻辑在 internal/app/sharelink。
func RegisterAPIRoutes(api *gee.RouterGroup, limiter ratelimit.Backend) {
	links := api.Group("/links")
	// 单条改写 60次/分钟
	links.GET("/lang", httpmiddleware.RateLimit(limiter, "links-lang", 60, time.Minute), NewRewriteHandler())
	// 批量 20次/分钟
	links.POST("/lang", httpmiddleware.RateLimit(limiter, "links-batch", 20, time.Minute), NewBatchRewriteHandler())
	links.GET("/variants", httpmiddleware.RateLimit(limiter, "links-variants", 60, time.Minute), NewVariantsHandler())
}
