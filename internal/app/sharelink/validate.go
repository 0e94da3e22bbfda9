package sharelink

import (
	"errors"
	"net/url"
	"strings"
)

// ErrInvalidURL 是传输层拒绝明显不是链接的输入时用的错误；Rewrite 本身从不报错。
var ErrInvalidURL = errors.New("invalid url")

// ValidateURL 要求 scheme 为 http/https 且 host 非空。
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidURL
	}
	if strings.TrimSpace(u.Host) == "" {
		return ErrInvalidURL
	}
	return nil
}
