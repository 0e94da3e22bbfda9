package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestConfigLoad_UsesDefaults(t *testing.T) {
	for _, k := range []string{
		"ADDR", "IDLE_TIMEOUT", "SHUTDOWN_TIMEOUT", "READ_HEADER_TIMEOUT", "READ_TIMEOUT", "WRITE_TIMEOUT",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_DIR", "LOG_TO_FILE", "TIMEZONE", "LOG_TIME_PATTERN", "ZONE_CACHE_SIZE",
		"TRACING_ENABLED", "RATELIMIT_ENABLED", "REDIS_DB",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()

	if cfg.Addr != ":9999" {
		t.Fatalf("Addr: got %q, want %q", cfg.Addr, ":9999")
	}
	if cfg.IdleTimeout != 60*time.Second {
		t.Fatalf("IdleTimeout: got %v, want %v", cfg.IdleTimeout, 60*time.Second)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("ShutdownTimeout: got %v, want %v", cfg.ShutdownTimeout, 10*time.Second)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("LogLevel: got %v, want %v", cfg.LogLevel, slog.LevelInfo)
	}
	if cfg.LogDir != "/var/log/psychochauffeurbot" {
		t.Fatalf("LogDir: got %q", cfg.LogDir)
	}
	if cfg.Timezone != "Europe/Kyiv" {
		t.Fatalf("Timezone: got %q, want %q", cfg.Timezone, "Europe/Kyiv")
	}
	if cfg.LogTimePattern != "%Y-%m-%d %H:%M:%S %z" {
		t.Fatalf("LogTimePattern: got %q", cfg.LogTimePattern)
	}
	if cfg.LogToFile {
		t.Fatal("LogToFile: got true, want false")
	}
	if cfg.ZoneCacheSize != 64 {
		t.Fatalf("ZoneCacheSize: got %d, want 64", cfg.ZoneCacheSize)
	}
	if !cfg.RateLimitEnabled {
		t.Fatal("RateLimitEnabled: got false, want true")
	}
}

func TestConfigLoad_ReadsEnv(t *testing.T) {
	t.Setenv("ADDR", ":18080")
	t.Setenv("IDLE_TIMEOUT", "2m")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("READ_HEADER_TIMEOUT", "4s")
	t.Setenv("READ_TIMEOUT", "5s")
	t.Setenv("WRITE_TIMEOUT", "6s")
	t.Setenv("LOG_LEVEL", "WARNING")
	t.Setenv("LOG_FORMAT", "TEXT")
	t.Setenv("LOG_DIR", "/tmp/chatlogs")
	t.Setenv("LOG_TO_FILE", "true")
	t.Setenv("TIMEZONE", "Europe/Bratislava")
	t.Setenv("LOG_TIME_PATTERN", "%H:%M")
	t.Setenv("ZONE_CACHE_SIZE", "16")
	t.Setenv("RATELIMIT_ENABLED", "false")
	t.Setenv("REDIS_DB", "2")

	cfg := Load()

	if cfg.Addr != ":18080" {
		t.Fatalf("Addr: got %q, want %q", cfg.Addr, ":18080")
	}
	if cfg.IdleTimeout != 2*time.Minute {
		t.Fatalf("IdleTimeout: got %v, want %v", cfg.IdleTimeout, 2*time.Minute)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("ShutdownTimeout: got %v, want %v", cfg.ShutdownTimeout, 3*time.Second)
	}
	if cfg.ReadHeaderTimeout != 4*time.Second {
		t.Fatalf("ReadHeaderTimeout: got %v, want %v", cfg.ReadHeaderTimeout, 4*time.Second)
	}
	if cfg.ReadTimeout != 5*time.Second {
		t.Fatalf("ReadTimeout: got %v, want %v", cfg.ReadTimeout, 5*time.Second)
	}
	if cfg.WriteTimeout != 6*time.Second {
		t.Fatalf("WriteTimeout: got %v, want %v", cfg.WriteTimeout, 6*time.Second)
	}
	if cfg.LogLevel != slog.LevelWarn {
		t.Fatalf("LogLevel: got %v, want %v", cfg.LogLevel, slog.LevelWarn)
	}
	if cfg.LogFormat != "text" {
		t.Fatalf("LogFormat: got %q, want %q", cfg.LogFormat, "text")
	}
	if cfg.LogDir != "/tmp/chatlogs" || !cfg.LogToFile {
		t.Fatalf("LogDir/LogToFile: got %q/%v", cfg.LogDir, cfg.LogToFile)
	}
	if cfg.Timezone != "Europe/Bratislava" || cfg.LogTimePattern != "%H:%M" {
		t.Fatalf("Timezone/LogTimePattern: got %q/%q", cfg.Timezone, cfg.LogTimePattern)
	}
	if cfg.ZoneCacheSize != 16 {
		t.Fatalf("ZoneCacheSize: got %d, want 16", cfg.ZoneCacheSize)
	}
	if cfg.RateLimitEnabled {
		t.Fatal("RateLimitEnabled: got true, want false")
	}
	if cfg.RedisDB != 2 {
		t.Fatalf("RedisDB: got %d, want 2", cfg.RedisDB)
	}
}

func TestConfigLoad_BadValuesKeepDefaults(t *testing.T) {
	t.Setenv("IDLE_TIMEOUT", "soon")
	t.Setenv("REDIS_DB", "-1")
	t.Setenv("ZONE_CACHE_SIZE", "lots")
	t.Setenv("LOG_LEVEL", "loud")

	cfg := Load()

	if cfg.IdleTimeout != 60*time.Second {
		t.Fatalf("IdleTimeout: got %v", cfg.IdleTimeout)
	}
	if cfg.RedisDB != 0 {
		t.Fatalf("RedisDB: got %d", cfg.RedisDB)
	}
	if cfg.ZoneCacheSize != 64 {
		t.Fatalf("ZoneCacheSize: got %d", cfg.ZoneCacheSize)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("LogLevel: got %v", cfg.LogLevel)
	}
}
