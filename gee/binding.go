package gee

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxJSONBody 限制请求体大小，防止一次请求塞进超大 JSON
const maxJSONBody = 1 << 20

// ShouldBindJSON 只解析 JSON：拒绝未知字段，body 里只能有一个 JSON 值。
func (c *Context) ShouldBindJSON(dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(c.Writer, c.Req.Body, maxJSONBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON value")
	}
	return nil
}

// BindJSON 解析失败时直接返回 400。
func (c *Context) BindJSON(dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithError(http.StatusBadRequest, "invalid json")
		return err
	}
	return nil
}
