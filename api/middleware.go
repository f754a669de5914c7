package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader 是请求ID使用的HTTP头
const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware 为每个请求分配一个uuid v7作为请求ID。
// 客户端带来的ID被原样保留，便于前后端日志对照。
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			if id, err := uuid.NewV7(); err == nil {
				requestID = id.String()
			}
		}
		c.Set("requestID", requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}
