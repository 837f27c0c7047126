package middleware

import (
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/wfunc/rgs-engine/internal/errors"
	"github.com/wfunc/rgs-engine/internal/logger"
)

// RequestLogger 请求日志中间件
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.LogRequest(c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), c.ClientIP())
	}
}

// Recovery panic恢复中间件，向客户端只返回通用错误
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.LogPanic(r, debug.Stack())
				err := apperrors.New(apperrors.ErrUnknown)
				c.AbortWithStatusJSON(err.HTTPStatus(), apperrors.NewErrorResponse(err, requestID(c)))
			}
		}()
		c.Next()
	}
}
