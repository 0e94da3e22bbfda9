package httpapi

import (
	"time"

	"chauffeur.local/gee"
	"chauffeur.local/internal/app/chatlog"
	"chauffeur.local/internal/platform/httpmiddleware"
	"chauffeur.local/internal/platform/ratelimit"
)

// Handlers 持有启动时构造好的民用时区组件；Zones 用于按请求覆盖时区，可以为 nil。
type Handlers struct {
	Resolver  *chatlog.PathResolver
	Formatter *chatlog.TimeFormatter
	Zones     *chatlog.ZoneCache
}

// RegisterAPIRoutes 挂载 /logs/path 和 /time/format。
func RegisterAPIRoutes(api *gee.RouterGroup, h *Handlers, limiter ratelimit.Backend) {
	rl := httpmiddleware.RateLimit(limiter, "chatlog", 120, time.Minute)
	api.GET("/logs/path", rl, h.LogPath)
	api.GET("/time/format", rl, h.FormatTime)
}
