package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	IdleTimeout       time.Duration // 空闲连接保持时间
	ShutdownTimeout   time.Duration // 优雅关闭的最长等待时间
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration

	// 日志配置信息
	LogLevel    slog.Level
	LogFormat   string // json | text
	ServiceName string

	// 聊天日志与民用时区
	LogDir         string // 每日日志文件目录
	LogToFile      bool   // 除 stdout 外是否写入当日的 chat_YYYY-MM-DD.log
	Timezone       string // IANA 名称，例如 Europe/Kyiv
	LogTimePattern string // strftime 格式
	ZoneCacheSize  int64

	PprofEnabled bool
	AdminAddr    string

	OtlpGrpcEndpoint string
	OtlpServiceName  string
	TracingEnabled   bool

	//Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// RateLimit
	RateLimitEnabled bool
}

func Load() Config {
	cfg := Config{
		Addr:              ":9999",
		IdleTimeout:       60 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,

		LogLevel:    slog.LevelInfo,
		LogFormat:   "json",
		ServiceName: "chauffeur-api",

		LogDir:         "/var/log/psychochauffeurbot",
		LogToFile:      false,
		Timezone:       "Europe/Kyiv",
		LogTimePattern: "%Y-%m-%d %H:%M:%S %z",
		ZoneCacheSize:  64,

		PprofEnabled: false,
		AdminAddr:    "127.0.0.1:6060",

		OtlpGrpcEndpoint: "127.0.0.1:4317",
		OtlpServiceName:  "chauffeur-api",
		TracingEnabled:   false,

		RedisAddr:     "localhost:6379",
		RedisPassword: "",
		RedisDB:       0,

		RateLimitEnabled: true,
	}

	_ = godotenv.Load(".env")

	if v, ok := os.LookupEnv("ADDR"); ok && v != "" {
		cfg.Addr = v
	}
	setDuration(&cfg.IdleTimeout, "IDLE_TIMEOUT")
	setDuration(&cfg.ShutdownTimeout, "SHUTDOWN_TIMEOUT")
	setDuration(&cfg.ReadHeaderTimeout, "READ_HEADER_TIMEOUT")
	setDuration(&cfg.ReadTimeout, "READ_TIMEOUT")
	setDuration(&cfg.WriteTimeout, "WRITE_TIMEOUT")

	if v, ok := os.LookupEnv("LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = parseLevel(v)
	}
	if v, ok := os.LookupEnv("LOG_FORMAT"); ok && v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv("SERVICE_NAME"); ok && v != "" {
		cfg.ServiceName = v
	}

	if v, ok := os.LookupEnv("LOG_DIR"); ok && v != "" {
		cfg.LogDir = v
	}
	setBool(&cfg.LogToFile, "LOG_TO_FILE")
	if v, ok := os.LookupEnv("TIMEZONE"); ok && v != "" {
		cfg.Timezone = v
	}
	if v, ok := os.LookupEnv("LOG_TIME_PATTERN"); ok && v != "" {
		cfg.LogTimePattern = v
	}
	if v, ok := os.LookupEnv("ZONE_CACHE_SIZE"); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.ZoneCacheSize = n
		}
	}

	setBool(&cfg.PprofEnabled, "PPROF_ENABLED")
	if v, ok := os.LookupEnv("ADMIN_ADDR"); ok && v != "" {
		cfg.AdminAddr = v
	}

	if v, ok := os.LookupEnv("OTLP_GRPC_ENDPOINT"); ok && v != "" {
		cfg.OtlpGrpcEndpoint = v
	}
	if v, ok := os.LookupEnv("OTLP_SERVICE_NAME"); ok && v != "" {
		cfg.OtlpServiceName = v
	}
	setBool(&cfg.TracingEnabled, "TRACING_ENABLED")

	// Redis
	if v, ok := os.LookupEnv("REDIS_ADDR"); ok && v != "" {
		cfg.RedisAddr = v
	}
	if v, ok := os.LookupEnv("REDIS_PASSWORD"); ok && v != "" {
		cfg.RedisPassword = v
	}
	if v, ok := os.LookupEnv("REDIS_DB"); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RedisDB = n
		}
	}

	setBool(&cfg.RateLimitEnabled, "RATELIMIT_ENABLED")

	return cfg
}

// 解析失败时保留默认值
func setDuration(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = strings.ToLower(v) == "true"
	}
}

func parseLevel(v string) slog.Level {
	switch strings.ToLower(v) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
