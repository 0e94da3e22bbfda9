package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"chauffeur.local/gee"
	"chauffeur.local/internal/app/chatlog"
	"chauffeur.local/internal/platform/metrics"
)

type LogPathResponse struct {
	Path  string `json:"path"`
	TZ    string `json:"tz"`
	Input string `json:"input"` // now | aware | wallclock
}

type FormatTimeResponse struct {
	Time    string `json:"time"`
	TZ      string `json:"tz"`
	Pattern string `json:"pattern"`
}

// LogPath: GET /logs/path?date=<RFC3339>|wall=<YYYY-MM-DDTHH:MM:SS>&tz=
//
// date 带时区偏移，会换算到民用时区；wall 是墙上时间，不做换算。两者都没有时取当前时刻。
func (h *Handlers) LogPath(ctx *gee.Context) {
	loc, ok := h.location(ctx, h.Resolver.Location)
	if !ok {
		return
	}

	date := strings.TrimSpace(ctx.Query("date"))
	wall := strings.TrimSpace(ctx.Query("wall"))
	var instant any
	input := "now"
	switch {
	case date != "" && wall != "":
		ctx.AbortWithError(http.StatusBadRequest, "date and wall are mutually exclusive")
		return
	case date != "":
		t, err := time.Parse(time.RFC3339, date)
		if err != nil {
			ctx.AbortWithError(http.StatusBadRequest, "date must be RFC3339")
			return
		}
		instant, input = t, "aware"
	case wall != "":
		dt, err := civil.ParseDateTime(wall)
		if err != nil {
			ctx.AbortWithError(http.StatusBadRequest, "wall must be YYYY-MM-DDTHH:MM:SS")
			return
		}
		instant, input = dt, "wallclock"
	}

	path, err := h.Resolver.ResolveIn(instant, h.Resolver.BaseDir, loc)
	if err != nil {
		writeDomainError(ctx, err)
		return
	}
	metrics.LogPathResolutionsTotal.WithLabelValues(input).Inc()
	trace.SpanFromContext(ctx.Req.Context()).SetAttributes(
		attribute.String("chatlog.input", input),
		attribute.String("chatlog.tz", loc.String()),
	)
	ctx.JSON(http.StatusOK, LogPathResponse{Path: path, TZ: loc.String(), Input: input})
}

// FormatTime: GET /time/format?ts=<epoch seconds>&pattern=&tz=
func (h *Handlers) FormatTime(ctx *gee.Context) {
	loc, ok := h.location(ctx, h.Formatter.Location())
	if !ok {
		return
	}
	ts := strings.TrimSpace(ctx.Query("ts"))
	if ts == "" {
		ctx.AbortWithError(http.StatusBadRequest, "ts is required")
		return
	}
	pattern := ctx.Query("pattern")

	out, err := h.Formatter.In(loc).FormatValue(ts, pattern)
	if err != nil {
		metrics.TimestampFormatErrorsTotal.Inc()
		writeDomainError(ctx, err)
		return
	}
	if pattern == "" {
		pattern = h.Formatter.Pattern()
	}
	ctx.JSON(http.StatusOK, FormatTimeResponse{Time: out, TZ: loc.String(), Pattern: pattern})
}

// location 解析 tz 参数；为空用 fallback，未知时区已写入 400。
func (h *Handlers) location(ctx *gee.Context, fallback *time.Location) (*time.Location, bool) {
	name := strings.TrimSpace(ctx.Query("tz"))
	if name == "" {
		if fallback == nil {
			fallback = chatlog.DefaultLocation()
		}
		return fallback, true
	}
	loc, err := h.Zones.Location(name)
	if err != nil {
		writeDomainError(ctx, err)
		return nil, false
	}
	return loc, true
}

func writeDomainError(ctx *gee.Context, err error) {
	if errors.Is(err, chatlog.ErrInvalidArgument) {
		ctx.AbortWithError(http.StatusBadRequest, err.Error())
		return
	}
	ctx.AbortWithError(http.StatusInternalServerError, "internal error")
}
