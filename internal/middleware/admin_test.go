package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"GongKe/config"
	"GongKe/pkg/errors"
)

func TestCheckAdminToken(t *testing.T) {
	original := config.Cfg.AdminToken
	defer func() { config.Cfg.AdminToken = original }()

	// 未配置口令时一律拒绝，包括空口令请求
	config.Cfg.AdminToken = ""
	assert.ErrorIs(t, CheckAdminToken(""), errors.AdminTokenUnset)
	assert.ErrorIs(t, CheckAdminToken("anything"), errors.AdminTokenUnset)

	config.Cfg.AdminToken = "secret-token"
	assert.ErrorIs(t, CheckAdminToken(""), errors.Unauthorized)
	assert.ErrorIs(t, CheckAdminToken("wrong"), errors.Unauthorized)
	// 前缀匹配不算通过
	assert.ErrorIs(t, CheckAdminToken("secret"), errors.Unauthorized)

	assert.NoError(t, CheckAdminToken("secret-token"))
}
