// Package logging 组装服务的 slog 日志：时间字段按民用时区渲染，可选地同时写入当日的聊天日志文件。
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"chauffeur.local/internal/app/chatlog"
)

type Options struct {
	Level       slog.Leveler
	Format      string // json | text，默认 json
	Renderer    chatlog.TimestampRenderer
	TimePattern string // 为空时用 Renderer 的默认格式
}

// NewHandler 按 Options 创建 JSON 或 text handler。
func NewHandler(w io.Writer, opts Options) slog.Handler {
	ho := &slog.HandlerOptions{Level: opts.Level}
	if opts.Renderer != nil {
		ho.ReplaceAttr = ReplaceTime(opts.Renderer, opts.TimePattern)
	}
	if strings.EqualFold(opts.Format, "text") {
		return slog.NewTextHandler(w, ho)
	}
	return slog.NewJSONHandler(w, ho)
}

// New 创建写入 ws（多个时用 io.MultiWriter 合并）的 logger。
func New(opts Options, ws ...io.Writer) *slog.Logger {
	var w io.Writer = os.Stdout
	switch len(ws) {
	case 0:
	case 1:
		w = ws[0]
	default:
		w = io.MultiWriter(ws...)
	}
	return slog.New(NewHandler(w, opts))
}

// ReplaceTime 把顶层的 time 字段交给 r 渲染；渲染失败时保留原值。
func ReplaceTime(r chatlog.TimestampRenderer, pattern string) func(groups []string, a slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) > 0 || a.Key != slog.TimeKey || a.Value.Kind() != slog.KindTime {
			return a
		}
		t := a.Value.Time()
		ts := float64(t.Unix()) + float64(t.Nanosecond())/1e9
		s, err := r.RenderTimestamp(ts, pattern)
		if err != nil {
			return a
		}
		return slog.String(slog.TimeKey, s)
	}
}

// OpenDaily 创建日志目录并以追加方式打开当日的日志文件，返回文件和路径。
// 只在启动时打开一次，不做按天切换。
func OpenDaily(resolver *chatlog.PathResolver) (*os.File, string, error) {
	path := resolver.Today()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, path, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, path, fmt.Errorf("open log file: %w", err)
	}
	return f, path, nil
}
