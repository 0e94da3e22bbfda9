package chatlog

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
)

// DefaultTimePattern 是日志时间戳的默认 strftime 格式。
const DefaultTimePattern = "%Y-%m-%d %H:%M:%S %z"

// TimestampRenderer 把日志记录的创建时间（UTC 纪元秒，可带小数）渲染成字符串。
// pattern 为空时使用实现自己的默认格式。日志框架适配这个接口，而不是反过来。
type TimestampRenderer interface {
	RenderTimestamp(ts float64, pattern string) (string, error)
}

// TimeFormatter 在固定的民用时区里渲染时间戳，与进程本地时区无关。
type TimeFormatter struct {
	loc     *time.Location
	pattern string
	layout  *strftime.Strftime
}

var _ TimestampRenderer = (*TimeFormatter)(nil)

// NewTimeFormatter 预编译默认格式。loc 为 nil 时用 Europe/Kyiv，pattern 为空时用 DefaultTimePattern。
func NewTimeFormatter(loc *time.Location, pattern string) (*TimeFormatter, error) {
	if loc == nil {
		loc = DefaultLocation()
	}
	if pattern == "" {
		pattern = DefaultTimePattern
	}
	layout, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}
	return &TimeFormatter{loc: loc, pattern: pattern, layout: layout}, nil
}

func (f *TimeFormatter) Location() *time.Location { return f.loc }

func (f *TimeFormatter) Pattern() string { return f.pattern }

// In 返回使用另一个时区的副本，默认格式保持不变。
func (f *TimeFormatter) In(loc *time.Location) *TimeFormatter {
	if loc == nil {
		return f
	}
	cp := *f
	cp.loc = loc
	return &cp
}

// Format 把纪元秒 ts 换算到民用时区，按 pattern 渲染；pattern 为空用默认格式。
func (f *TimeFormatter) Format(ts float64, pattern string) (string, error) {
	t, err := fromEpochSeconds(ts)
	if err != nil {
		return "", err
	}
	return f.FormatTime(t, pattern)
}

func (f *TimeFormatter) RenderTimestamp(ts float64, pattern string) (string, error) {
	return f.Format(ts, pattern)
}

// FormatTime renders t in the formatter's zone.
func (f *TimeFormatter) FormatTime(t time.Time, pattern string) (string, error) {
	t = t.In(f.loc)
	if pattern == "" || pattern == f.pattern {
		return f.layout.FormatString(t), nil
	}
	layout, err := compilePattern(pattern)
	if err != nil {
		return "", err
	}
	return layout.FormatString(t), nil
}

// FormatValue 接受任意数字类型、json.Number 或数字字符串；其它输入返回 ErrInvalidArgument。
func (f *TimeFormatter) FormatValue(v any, pattern string) (string, error) {
	ts, err := epochSeconds(v)
	if err != nil {
		return "", err
	}
	return f.Format(ts, pattern)
}

func compilePattern(pattern string) (*strftime.Strftime, error) {
	layout, err := strftime.New(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: bad time pattern %q: %v", ErrInvalidArgument, pattern, err)
	}
	return layout, nil
}

func epochSeconds(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		if ts, err := n.Float64(); err == nil {
			return ts, nil
		}
	case string:
		if ts, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return ts, nil
		}
	}
	return 0, fmt.Errorf("%w: timestamp must be numeric, got %T(%v)", ErrInvalidArgument, v, v)
}

// 超出 int64 秒的范围没有意义，NaN/Inf 也一样
func fromEpochSeconds(ts float64) (time.Time, error) {
	if math.IsNaN(ts) || math.IsInf(ts, 0) || ts >= math.MaxInt64 || ts <= math.MinInt64 {
		return time.Time{}, fmt.Errorf("%w: timestamp out of range: %v", ErrInvalidArgument, ts)
	}
	sec, frac := math.Modf(ts)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC(), nil
}
