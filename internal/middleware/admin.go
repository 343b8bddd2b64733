package middleware

import (
	"context"
	"crypto/subtle"
	"encoding/json"

	"github.com/cloudwego/hertz/pkg/app"

	"GongKe/config"
	"GongKe/pkg/errors"
	"GongKe/pkg/response"
)

// AdminGateMiddleware 管理口令校验，必须在任何存储访问之前短路。
// 口令可以放 query 的 token，也可以放请求体的 adminToken 字段
func AdminGateMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if err := CheckAdminToken(extractAdminToken(c)); err != nil {
			c.Abort()
			response.Error(ctx, c, err)
			return
		}

		c.Next(ctx)
	}
}

// CheckAdminToken 常数时间比较，配置缺失时一律拒绝
func CheckAdminToken(token string) error {
	configured := config.Cfg.AdminToken
	if configured == "" {
		return errors.AdminTokenUnset
	}
	if token == "" {
		return errors.Unauthorized
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(configured)) != 1 {
		return errors.Unauthorized
	}
	return nil
}

func extractAdminToken(c *app.RequestContext) string {
	if token := c.Query("token"); token != "" {
		return token
	}

	body := c.Request.Body()
	if len(body) == 0 {
		return ""
	}

	var payload struct {
		AdminToken string `json:"adminToken"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.AdminToken
}
