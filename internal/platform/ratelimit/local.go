package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Backend 是限流中间件依赖的能力；redis 版和进程内版都实现它。
type Backend interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration, member string) (Decision, error)
}

var (
	_ Backend = (*Limiter)(nil)
	_ Backend = (*LocalLimiter)(nil)
)

// LocalLimiter 是进程内的令牌桶限流，redis 不可用时降级使用。
// 多实例部署时每个实例各自计数。
type LocalLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	maxKeys int
}

// NewLocalLimiter 最多保留 maxKeys 个 key 的桶，超过后整体清空重建。
func NewLocalLimiter(maxKeys int) *LocalLimiter {
	if maxKeys <= 0 {
		maxKeys = 10000
	}
	return &LocalLimiter{
		buckets: make(map[string]*rate.Limiter),
		maxKeys: maxKeys,
	}
}

// Allow 以 window/limit 的速率补充令牌，桶容量为 limit；member 在本地实现里不用。
func (l *LocalLimiter) Allow(_ context.Context, key string, limit int, window time.Duration, _ string) (Decision, error) {
	if limit <= 0 || window <= 0 {
		return Decision{Allowed: false, RetryAfter: window}, nil
	}

	b := l.bucket(key, limit, window)
	r := b.Reserve()
	if d := r.Delay(); d > 0 {
		r.Cancel()
		return Decision{Allowed: false, RetryAfter: d}, nil
	}
	return Decision{Allowed: true}, nil
}

func (l *LocalLimiter) bucket(key string, limit int, window time.Duration) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		return b
	}
	if len(l.buckets) >= l.maxKeys {
		l.buckets = make(map[string]*rate.Limiter)
	}
	b := rate.NewLimiter(rate.Every(window/time.Duration(limit)), limit)
	l.buckets[key] = b
	return b
}
