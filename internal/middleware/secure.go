package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
)

// SecureHeadersMiddleware 基础安全响应头
func SecureHeadersMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "no-referrer")

		c.Next(ctx)
	}
}
