package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Prometheus 的 registry 不允许重复注册同名指标，重复注册会 panic。
	once sync.Once

	// HTTPRequestsTotal 按 method、路由模板、状态码累计请求数。
	// route 用模板而不是真实 path，避免 label 基数无限增长。
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "HTTP请求的总数",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency distributions.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPInflightRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	// RateLimitedTotal 被限流拒绝的请求数，prefix 对应限流规则名。
	RateLimitedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratelimit_rejected_total",
			Help: "Requests rejected by the rate limiter.",
		},
		[]string{"prefix"},
	)

	// LinkRewritesTotal 语言后缀改写次数，result: replaced | appended | unchanged。
	LinkRewritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "link_rewrites_total",
			Help: "Share link language suffix rewrites by outcome.",
		},
		[]string{"result"},
	)

	// LogPathResolutionsTotal 日志路径计算次数，input: now | aware | wallclock。
	LogPathResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "log_path_resolutions_total",
			Help: "Daily log path resolutions by input kind.",
		},
		[]string{"input"},
	)

	TimestampFormatErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "timestamp_format_errors_total",
			Help: "Timestamp render requests rejected as invalid.",
		},
	)
)

// Init 注册指标：只允许注册一次（否则 panic: duplicate metrics collector registration）
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDurationSeconds,
			HTTPInflightRequests,
			RateLimitedTotal,
			LinkRewritesTotal,
			LogPathResolutionsTotal,
			TimestampFormatErrorsTotal,
		)
	})
}
