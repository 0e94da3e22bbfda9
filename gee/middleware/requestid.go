package middleware

import (
	"encoding/hex"
	"strconv"
	"time"

	"chauffeur.local/gee"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// 客户端传入的 id 超过这个长度就重新生成
const maxRequestIDLen = 64

// ReqID 透传或生成 X-Request-ID，写回请求头和响应头。
func ReqID() gee.HandlerFunc {
	return func(ctx *gee.Context) {
		id := ctx.Req.Header.Get(RequestIDHeader)
		if !validRequestID(id) {
			id = GenerateReqID()
			ctx.Req.Header.Set(RequestIDHeader, id)
		}
		ctx.SetHeader(RequestIDHeader, id)

		ctx.Next()
	}
}

// GenerateReqID 返回去掉连字符的 UUIDv4（32 个十六进制字符）；随机源不可用时退回纳秒时间戳。
func GenerateReqID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return hex.EncodeToString(id[:])
}

// 只接受可打印 ASCII，避免把控制字符写进日志
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
