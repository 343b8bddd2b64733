package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"GongKe/internal/model/dto"
	"GongKe/internal/service"
	"GongKe/pkg/response"
)

// ListOperationLogs 分页读取审计日志，路由上挂管理口令中间件
// GET /api/logs
func ListOperationLogs(ctx context.Context, c *app.RequestContext) {
	var q dto.OplogQuery
	if err := c.BindQuery(&q); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	entries, pagination, err := service.Oplog().List(ctx, q)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{
		"data":       entries,
		"pagination": pagination,
	})
}
