package chatlog

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // 内置时区库，不依赖宿主机的 /usr/share/zoneinfo
)

// DefaultZoneName 是机器人运行所在的民用时区（UTC+2/+3，含夏令时）。
const DefaultZoneName = "Europe/Kyiv"

var defaultLocation = mustLoadLocation(DefaultZoneName)

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("chatlog: load %s: %v", name, err))
	}
	return loc
}

// DefaultLocation returns the Europe/Kyiv location.
func DefaultLocation() *time.Location {
	return defaultLocation
}

// LoadLocation 按名称加载时区，空名称返回默认时区。
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == DefaultZoneName {
		return defaultLocation, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidArgument, name)
	}
	return loc, nil
}
