// Package httpx 各模块 Handler 共用的请求绑定与错误响应
package httpx

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xxz807/bookkeeping/internal/platform/apperr"
)

// RequestIDKey gin.Context 中保存请求 ID 的键
const RequestIDKey = "request_id"

func init() {
	// 金额以 JSON number 输出，前端直接参与计算
	decimal.MarshalJSONWithoutQuotes = true
}

// BindJSON 解析请求体，失败时统一成 ValidationError
func BindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		if errors.Is(err, io.EOF) {
			return &apperr.ValidationError{Message: "invalid request: empty body"}
		}
		return &apperr.ValidationError{Message: "invalid request: " + err.Error()}
	}
	return nil
}

// RespondError 按错误类别返回状态码，5xx 记录日志且不向调用方暴露细节
func RespondError(c *gin.Context, logger *zap.Logger, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.Error(err),
		)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
