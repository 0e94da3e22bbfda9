package httpmiddleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"chauffeur.local/gee"
	"chauffeur.local/internal/platform/metrics"
	"chauffeur.local/internal/platform/ratelimit"
)

var rateLimitMemberSeq uint64

// ClientIP 获取真实客户端 IP（用于限流/审计）。
//
// 只有请求来自可信代理（本机、私网、IPv6 ULA）时才看转发头，
// 否则客户端可以伪造 X-Forwarded-For 绕过按 IP 的限流。
func ClientIP(req *http.Request) string {
	remoteHost, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		remoteHost = req.RemoteAddr
	}
	remote, err := netip.ParseAddr(remoteHost)
	if err != nil || !isTrustedProxy(remote) {
		return remoteHost
	}

	// Cloudflare -> 反代 -> app：优先 CF-Connecting-IP
	if ip, ok := parseIP(req.Header.Get("CF-Connecting-IP")); ok {
		return ip
	}
	// 第一个一般是原始客户端，后面是经过的代理
	if xff := req.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip, ok := parseIP(first); ok {
			return ip
		}
	}
	if ip, ok := parseIP(req.Header.Get("X-Real-IP")); ok {
		return ip
	}
	return remoteHost
}

func parseIP(s string) (string, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return addr.String(), true
}

func isTrustedProxy(ip netip.Addr) bool {
	ip = ip.Unmap()
	return ip.IsLoopback() || ip.IsPrivate()
}

// RateLimit 按客户端 IP 限流，超限返回 429 + Retry-After。
// limiter 为 nil（未启用）或后端出错时放行。
func RateLimit(limiter ratelimit.Backend, prefix string, limit int, window time.Duration) gee.HandlerFunc {
	return func(ctx *gee.Context) {
		if limiter == nil {
			ctx.Next()
			return
		}
		key := "rl:" + prefix + ":" + ClientIP(ctx.Req)

		// member 必须每次请求唯一，否则 ZADD 会覆盖同一个 member；纳秒时间可能重复，加序列号
		member := strconv.FormatInt(time.Now().UnixNano(), 10) + "-" + strconv.FormatUint(atomic.AddUint64(&rateLimitMemberSeq, 1), 10)
		rlCtx, cancel := context.WithTimeout(ctx.Req.Context(), 50*time.Millisecond)
		defer cancel()
		d, err := limiter.Allow(rlCtx, key, limit, window, member)
		if err != nil {
			slog.Error("rate limit check failed", "err", err, "prefix", prefix)
			ctx.Next()
			return
		}
		if !d.Allowed {
			metrics.RateLimitedTotal.WithLabelValues(prefix).Inc()
			if d.RetryAfter > 0 {
				secs := int64((d.RetryAfter + time.Second - 1) / time.Second) // 向上取整，单位秒
				ctx.SetHeader("Retry-After", strconv.FormatInt(secs, 10))
			}
			ctx.AbortWithError(http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		ctx.Next()
	}
}
