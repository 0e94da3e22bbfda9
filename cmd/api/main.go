package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"chauffeur.local/gee"
	"chauffeur.local/gee/middleware"
	"chauffeur.local/internal/app/chatlog"
	chatloghttpapi "chauffeur.local/internal/app/chatlog/httpapi"
	sharelinkhttpapi "chauffeur.local/internal/app/sharelink/httpapi"
	platformcache "chauffeur.local/internal/platform/cache"
	"chauffeur.local/internal/platform/config"
	"chauffeur.local/internal/platform/httpmiddleware"
	"chauffeur.local/internal/platform/httpserver"
	"chauffeur.local/internal/platform/logging"
	"chauffeur.local/internal/platform/metrics"
	"chauffeur.local/internal/platform/ratelimit"
	"chauffeur.local/internal/platform/trace"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

func main() {
	cfg := config.Load()

	// 民用时区只在启动时加载一次，之后注入到各组件
	loc, err := chatlog.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatal(err)
	}
	formatter, err := chatlog.NewTimeFormatter(loc, cfg.LogTimePattern)
	if err != nil {
		log.Fatal(err)
	}
	resolver := chatlog.NewPathResolver(cfg.LogDir, loc)

	//日志
	writers := []io.Writer{os.Stdout}
	var logFile string
	if cfg.LogToFile {
		f, path, errFile := logging.OpenDaily(resolver)
		if errFile != nil {
			log.Fatal(errFile)
		}
		defer f.Close()
		writers = append(writers, f)
		logFile = path
	}
	slog.SetDefault(logging.New(logging.Options{
		Level:    cfg.LogLevel,
		Format:   cfg.LogFormat,
		Renderer: formatter,
	}, writers...))
	slog.Info("civil timezone loaded", "tz", loc.String(), "log_file", logFile)

	zones, err := chatlog.NewZoneCache(cfg.ZoneCacheSize)
	if err != nil {
		log.Fatal(err)
	}
	defer zones.Close()

	//限流器：redis 不可用时降级为进程内令牌桶
	var limiter ratelimit.Backend
	if cfg.RateLimitEnabled {
		redisClient, errRedis := platformcache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if errRedis != nil {
			slog.Warn("redis unavailable, using local rate limiter", "addr", cfg.RedisAddr, "err", errRedis)
			limiter = ratelimit.NewLocalLimiter(0)
		} else {
			defer redisClient.Close()
			limiter = ratelimit.NewLimiter(redisClient)
		}
	} else {
		slog.Warn("RateLimit disabled by config", "RATELIMIT_ENABLED", false)
	}

	metrics.Init()

	if cfg.TracingEnabled {
		shutdown, errTrace := trace.InitTrace(cfg.OtlpGrpcEndpoint, cfg.OtlpServiceName)
		if errTrace != nil {
			slog.Error("Trace init failed", "err", errTrace)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					slog.Error("trace shutdown failed", "err", err)
				}
			}()
		}
	} else {
		slog.Warn("Tracing disabled by config", "TRACING_ENABLED", false)
	}

	// 对外业务；AccessLog 放在 Recovery 外层，panic 的请求也有 access 日志
	r := gee.New()
	r.Use(middleware.ReqID(), middleware.AccessLog(), gee.Recovery(), httpmiddleware.Metrics(), httpmiddleware.TraceName())

	r.GET("/healthz", func(ctx *gee.Context) {
		ctx.String(http.StatusOK, "ok")
	})

	api := r.Group("/api/v1")
	sharelinkhttpapi.RegisterAPIRoutes(api, limiter)
	chatloghttpapi.RegisterAPIRoutes(api, &chatloghttpapi.Handlers{
		Resolver:  resolver,
		Formatter: formatter,
		Zones:     zones,
	}, limiter)

	publicHandler := http.Handler(r)
	if cfg.TracingEnabled {
		publicHandler = otelhttp.NewHandler(r, "http")
	}
	publicSrv := httpserver.New(cfg, publicHandler)

	// 仅本机/内网
	adminMux := http.NewServeMux()
	adminMux.Handle("/metrics", promhttp.Handler())
	adminMux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"service_name": cfg.ServiceName,
			"version":      version,
			"commit":       commit,
			"build_time":   buildTime,
			"go_version":   runtime.Version(),
			"timezone":     loc.String(),
		})
	})
	if cfg.PprofEnabled {
		adminMux.HandleFunc("/debug/pprof/", pprof.Index)
		adminMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		adminMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		adminMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		adminMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	adminSrv := httpserver.NewWithAddr(cfg, cfg.AdminAddr, adminMux)

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("server starting", "addr", cfg.Addr, "admin_addr", cfg.AdminAddr)
	if err := httpserver.RunAll(stopCtx, cfg.ShutdownTimeout, publicSrv, adminSrv); err != nil {
		slog.Error("server exited", "err", err)
		stop()
		os.Exit(1)
	}
	slog.Info("server stopped")
}
