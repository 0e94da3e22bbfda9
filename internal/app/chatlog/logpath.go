package chatlog

import (
	"fmt"
	"path/filepath"
	"time"

	"cloud.google.com/go/civil"
)

const (
	// DefaultLogDir 是聊天日志的默认目录。
	DefaultLogDir = "/var/log/psychochauffeurbot"

	logFilePrefix = "chat_"
	logFileExt    = ".log"
	dateLayout    = "2006-01-02"
)

// PathResolver 计算某个民用日对应的聊天日志文件路径：<BaseDir>/chat_YYYY-MM-DD.log。
//
// 同一个民用时区日历日内的任意时刻都得到同一个路径。只拼字符串，不创建目录也不打开文件。
type PathResolver struct {
	BaseDir  string
	Location *time.Location
	Now      func() time.Time // nil 时用 time.Now，测试里可替换
}

func NewPathResolver(baseDir string, loc *time.Location) *PathResolver {
	return &PathResolver{BaseDir: baseDir, Location: loc}
}

// Resolve 支持的 instant：
//   - nil / (*time.Time)(nil)：当前时刻
//   - time.Time / *time.Time：带时区的时刻，先换算到民用时区再取日期
//   - civil.DateTime / *civil.DateTime：不带时区的墙上时间，直接视为民用时区时间，不做换算
//
// 其它类型返回 ErrInvalidArgument。
func (r *PathResolver) Resolve(instant any) (string, error) {
	return r.ResolveIn(instant, r.BaseDir, r.Location)
}

// ResolveIn 与 Resolve 相同，但按调用覆盖目录和时区；空目录、nil 时区回落到默认值。
func (r *PathResolver) ResolveIn(instant any, baseDir string, loc *time.Location) (string, error) {
	if loc == nil {
		loc = DefaultLocation()
	}
	day, err := r.civilTime(instant, loc)
	if err != nil {
		return "", err
	}
	return dailyPath(baseDir, day), nil
}

// Today 返回当前民用日的日志路径。
func (r *PathResolver) Today() string {
	return dailyPath(r.BaseDir, r.now().In(r.location()))
}

// ForTime 返回时刻 t 在民用时区所在日的日志路径。
func (r *PathResolver) ForTime(t time.Time) string {
	return dailyPath(r.BaseDir, t.In(r.location()))
}

// ForWallClock 把 dt 当作民用时区的墙上时间。非法字段（如 13 月）按 time.Date 的规则进位。
func (r *PathResolver) ForWallClock(dt civil.DateTime) string {
	return dailyPath(r.BaseDir, dt.In(r.location()))
}

func (r *PathResolver) civilTime(instant any, loc *time.Location) (time.Time, error) {
	switch v := instant.(type) {
	case nil:
		return r.now().In(loc), nil
	case time.Time:
		return v.In(loc), nil
	case *time.Time:
		if v == nil {
			return r.now().In(loc), nil
		}
		return v.In(loc), nil
	case civil.DateTime:
		return wallClock(v, loc)
	case *civil.DateTime:
		if v == nil {
			return r.now().In(loc), nil
		}
		return wallClock(*v, loc)
	default:
		return time.Time{}, fmt.Errorf("%w: date must be a date/time value or absent, got %T", ErrInvalidArgument, instant)
	}
}

func wallClock(dt civil.DateTime, loc *time.Location) (time.Time, error) {
	if !dt.IsValid() {
		return time.Time{}, fmt.Errorf("%w: invalid wall-clock date/time %s", ErrInvalidArgument, dt)
	}
	return dt.In(loc), nil
}

func (r *PathResolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *PathResolver) location() *time.Location {
	if r.Location == nil {
		return DefaultLocation()
	}
	return r.Location
}

func dailyPath(baseDir string, t time.Time) string {
	if baseDir == "" {
		baseDir = DefaultLogDir
	}
	return filepath.Join(baseDir, logFilePrefix+t.Format(dateLayout)+logFileExt)
}
