package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"GongKe/internal/middleware"
	"GongKe/internal/model"
	"GongKe/internal/model/dto"
	"GongKe/internal/queue"
	"GongKe/internal/service"
	"GongKe/pkg/metrics"
	"GongKe/pkg/response"
)

// SubmitRecord 提交一条功课记录。请求体字段不固定，
// 未识别字段随记录一并保留
// POST /api/submit
func SubmitRecord(ctx context.Context, c *app.RequestContext) {
	raw := map[string]interface{}{}
	if err := json.Unmarshal(c.Request.Body(), &raw); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	recordID, record, err := service.Practice().Submit(ctx, raw)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	metrics.GetMetrics().RecordSubmission(ctx, record.DeviceID)
	queue.LogOperation(model.OpTypeSubmit, map[string]interface{}{
		"recordId": recordID,
		"name":     record.Name,
		"date":     record.Date,
	}, c.ClientIP(), string(c.UserAgent()))

	response.Success(ctx, c, map[string]interface{}{
		"recordId":  recordID,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// ListRecords 分页查询功课记录
// GET /api/records
func ListRecords(ctx context.Context, c *app.RequestContext) {
	var q dto.ListQuery
	if err := c.BindQuery(&q); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	records, pagination, err := service.Practice().List(ctx, q)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{
		"data":       records,
		"pagination": pagination,
	})
}

// UpdateRecord 部分更新，请求体为 {id, ...字段}
// PUT /api/update
func UpdateRecord(ctx context.Context, c *app.RequestContext) {
	fields := map[string]interface{}{}
	if err := json.Unmarshal(c.Request.Body(), &fields); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	id, _ := fields["id"].(string)
	delete(fields, "id")

	modifiedCount, err := service.Practice().Update(ctx, id, fields)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	queue.LogOperation(model.OpTypeUpdate, map[string]interface{}{
		"recordId":      id,
		"modifiedCount": modifiedCount,
	}, c.ClientIP(), string(c.UserAgent()))

	response.Success(ctx, c, map[string]interface{}{
		"modifiedCount": modifiedCount,
	})
}

// DeleteRecord 删除单条或清空。id 为 "all" 时必须通过管理口令校验
// DELETE /api/delete
func DeleteRecord(ctx context.Context, c *app.RequestContext) {
	var req dto.DeleteRequest
	if body := c.Request.Body(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			response.BindError(ctx, c, err)
			return
		}
	}
	if req.ID == "" {
		req.ID = c.Query("id")
	}

	if req.ID == "all" {
		deleteAllRecords(ctx, c, req)
		return
	}

	deletedCount, err := service.Practice().Delete(ctx, req.ID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	metrics.GetMetrics().RecordDeletion(ctx, "practice", deletedCount)
	queue.LogOperation(model.OpTypeDelete, map[string]interface{}{
		"recordId":     req.ID,
		"deletedCount": deletedCount,
	}, c.ClientIP(), string(c.UserAgent()))

	response.Success(ctx, c, map[string]interface{}{
		"deletedCount": deletedCount,
	})
}

// deleteAllRecords 清空前先做口令校验，校验失败不触碰存储
func deleteAllRecords(ctx context.Context, c *app.RequestContext, req dto.DeleteRequest) {
	token := req.AdminToken
	if token == "" {
		token = c.Query("token")
	}
	if err := middleware.CheckAdminToken(token); err != nil {
		response.Error(ctx, c, err)
		return
	}

	deletedCount, err := service.Practice().DeleteAll(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	metrics.GetMetrics().RecordDeletion(ctx, "practice_all", deletedCount)
	queue.LogOperation(model.OpTypeClear, map[string]interface{}{
		"collection":   "practice_records",
		"deletedCount": deletedCount,
	}, c.ClientIP(), string(c.UserAgent()))

	response.Success(ctx, c, map[string]interface{}{
		"deletedCount": deletedCount,
	})
}

// PracticeStats 功课统计报表
// GET /api/stats
func PracticeStats(ctx context.Context, c *app.RequestContext) {
	var q dto.StatsQuery
	if err := c.BindQuery(&q); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	stats, err := service.Stats().PracticeStats(ctx, q)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{
		"stats": stats,
	})
}
