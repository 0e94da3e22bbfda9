package gee

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recovery 捕获 handler 的 panic：记录日志和堆栈，未写响应时返回 500 JSON。
func Recovery() HandlerFunc {
	return func(ctx *Context) {
		defer func() {
			err := recover()
			if err == nil {
				return
			}
			slog.Error("panic recovered",
				"request_id", ctx.Req.Header.Get("X-Request-ID"),
				"method", ctx.Method,
				"path", ctx.Path,
				"panic", err,
				"stack", string(debug.Stack()),
			)
			if ctx.Writer.Written() {
				ctx.Abort()
				return
			}
			ctx.AbortWithError(http.StatusInternalServerError, "Internal Server Error")
		}()
		ctx.Next()
	}
}
