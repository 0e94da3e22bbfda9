package chatlog

import "errors"

// ErrInvalidArgument 表示调用方传入了无法解释的时间参数（非时间值、非数字时间戳、未知时区或格式）。
var ErrInvalidArgument = errors.New("invalid argument")
