package response

import (
	"context"
	"net/http"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"GongKe/config"
	"GongKe/pkg/errors"
)

// 对外契约固定为 {success:..., ...}，错误为 {success:false, error, timestamp}，
// 与前端表单、离线小程序端的解析逻辑保持一致。

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Timestamp string `json:"timestamp"`
}

func errorToHTTPStatus(err error) int {
	def, ok := err.(errors.Definition)
	if !ok {
		return http.StatusInternalServerError
	}

	// 根据错误码映射 HTTP 状态码
	switch def.Code {
	case "VALIDATION_FAILED", "DATE_REQUIRED", "NAME_REQUIRED",
		"BATCH_EMPTY", "BATCH_ALL_INVALID",
		"INVALID_RECORD_ID", "INVALID_DATE_RANGE":
		return http.StatusBadRequest // 400
	case "UNAUTHORIZED", "ADMIN_TOKEN_UNSET":
		return http.StatusUnauthorized // 401
	case "RECORD_NOT_FOUND":
		return http.StatusNotFound // 404
	case "DUPLICATE_RECORD":
		return http.StatusConflict // 409
	case "TOO_MANY_REQUESTS":
		return http.StatusTooManyRequests // 429
	case "STORE_UNAVAILABLE", "NOT_CONNECTED":
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}

// Error 返回统一错误响应
func Error(ctx context.Context, c *app.RequestContext, err error) {
	statusCode := errorToHTTPStatus(err)

	var code, message string
	if def, ok := err.(errors.Definition); ok {
		code = def.Code
		message = def.Message
	} else {
		code = errors.Internal.Code
		if config.Cfg.IsProduction() {
			// 生产环境不泄漏内部错误细节
			message = errors.Internal.Message
		} else {
			message = err.Error()
		}
	}

	c.JSON(statusCode, ErrorResponse{
		Success:   false,
		Error:     message,
		Code:      code,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// Success 返回成功响应，payload 在顶层与 success 平铺
func Success(ctx context.Context, c *app.RequestContext, payload map[string]interface{}) {
	body := map[string]interface{}{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// BindError 请求体解析失败统一按校验错误处理
func BindError(ctx context.Context, c *app.RequestContext, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Success:   false,
		Error:     "Invalid request payload: " + err.Error(),
		Code:      errors.ValidationFailed.Code,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
