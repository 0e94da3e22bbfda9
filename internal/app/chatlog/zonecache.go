package chatlog

import (
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"
)

// ZoneCache 缓存按名称加载过的时区。
//
// time.LoadLocation 每次都会重新解析 tzdata，HTTP 接口允许按请求覆盖时区，所以放一层本地缓存。
type ZoneCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewZoneCache 创建时区缓存，maxItems 是最多缓存的时区个数。
func NewZoneCache(maxItems int64) (*ZoneCache, error) {
	if maxItems <= 0 {
		maxItems = 64
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxItems * 10,
		MaxCost:     maxItems, // cost=1，按条目数限制
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &ZoneCache{cache: cache, ttl: time.Hour}, nil
}

// Location 返回 name 对应的时区，空名称返回默认时区。nil 的 ZoneCache 直接走 LoadLocation。
func (z *ZoneCache) Location(name string) (*time.Location, error) {
	key := strings.TrimSpace(name)
	if key == "" {
		return DefaultLocation(), nil
	}
	if z == nil {
		return LoadLocation(key)
	}
	if v, ok := z.cache.Get(key); ok {
		return v.(*time.Location), nil
	}
	loc, err := LoadLocation(key)
	if err != nil {
		return nil, err
	}
	z.cache.SetWithTTL(key, loc, 1, z.ttl)
	return loc, nil
}

func (z *ZoneCache) Close() {
	if z == nil {
		return
	}
	z.cache.Close()
}
