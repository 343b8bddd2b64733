package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"GongKe/config"
	"GongKe/pkg/logger"
)

// RecoverMiddleware 捕获 handler panic，生产环境不回传细节
func RecoverMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				handlePanic(ctx, c, err)
			}
		}()

		c.Next(ctx)
	}
}

func handlePanic(ctx context.Context, c *app.RequestContext, err interface{}) {
	logger.Logger.Error("[PANIC RECOVERED]",
		zap.String("panic", fmt.Sprintf("%v", err)),
		zap.String("path", string(c.Path())),
		zap.String("method", string(c.Method())),
		zap.String("client_ip", c.ClientIP()),
		zap.String("user_agent", string(c.UserAgent())),
		zap.ByteString("stack", stackTrace()),
	)

	message := "Internal server error"
	if !config.Cfg.IsProduction() {
		message = fmt.Sprintf("Internal error: %v", err)
	}

	c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"success":   false,
		"error":     message,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// stackTrace 当前 goroutine 的简化调用栈
func stackTrace() []byte {
	var buf []byte
	skip := 3 // 跳过 runtime 和 recover 相关的函数
	for i := skip; ; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		buf = append(buf, fmt.Sprintf("  %s:%d\n    %s\n", file, line, fn.Name())...)
	}
	return buf
}
