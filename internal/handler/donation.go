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

// SubmitDonations 单条或批量提交捐献记录。
// 批量形态下无效条目丢弃计数，只要有一条入库即返回成功
// POST /api/donations
func SubmitDonations(ctx context.Context, c *app.RequestContext) {
	var req dto.DonationSubmitRequest
	if err := json.Unmarshal(c.Request.Body(), &req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Donation().SubmitBatch(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	metrics.GetMetrics().RecordDonationBatch(ctx, int64(result.SubmittedCount), int64(result.FailedCount))
	queue.LogOperation(model.OpTypeDonationSubmit, map[string]interface{}{
		"batchId":        result.BatchID,
		"submittedCount": result.SubmittedCount,
		"failedCount":    result.FailedCount,
	}, c.ClientIP(), string(c.UserAgent()))

	payload := map[string]interface{}{
		"batchId":        result.BatchID,
		"submittedCount": result.SubmittedCount,
		"failedCount":    result.FailedCount,
		"insertedIds":    result.InsertedIDs,
		"timestamp":      time.Now().Format(time.RFC3339),
	}
	if result.Warning != "" {
		payload["warning"] = result.Warning
	}
	response.Success(ctx, c, payload)
}

// ListDonations 分页查询捐献记录
// GET /api/donations
func ListDonations(ctx context.Context, c *app.RequestContext) {
	var q dto.ListQuery
	if err := c.BindQuery(&q); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	records, pagination, err := service.Donation().List(ctx, q)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{
		"data":       records,
		"pagination": pagination,
	})
}

// DeleteDonation 按标识删除单条，"all" 清空需管理口令。
// 标识依次尝试 Mongo 主键、localId、serverId
// DELETE /api/donations/:id
func DeleteDonation(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")

	if id == "all" {
		deleteAllDonations(ctx, c)
		return
	}

	deletedCount, err := service.Donation().Delete(ctx, id)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	metrics.GetMetrics().RecordDeletion(ctx, "donation", deletedCount)
	queue.LogOperation(model.OpTypeDonationDelete, map[string]interface{}{
		"recordId":     id,
		"deletedCount": deletedCount,
	}, c.ClientIP(), string(c.UserAgent()))

	response.Success(ctx, c, map[string]interface{}{
		"deletedCount": deletedCount,
	})
}

func deleteAllDonations(ctx context.Context, c *app.RequestContext) {
	token := c.Query("token")
	if token == "" {
		var body struct {
			AdminToken string `json:"adminToken"`
		}
		if raw := c.Request.Body(); len(raw) > 0 {
			_ = json.Unmarshal(raw, &body)
		}
		token = body.AdminToken
	}
	if err := middleware.CheckAdminToken(token); err != nil {
		response.Error(ctx, c, err)
		return
	}

	deletedCount, err := service.Donation().DeleteAll(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	metrics.GetMetrics().RecordDeletion(ctx, "donation_all", deletedCount)
	queue.LogOperation(model.OpTypeClear, map[string]interface{}{
		"collection":   "donation_records",
		"deletedCount": deletedCount,
	}, c.ClientIP(), string(c.UserAgent()))

	response.Success(ctx, c, map[string]interface{}{
		"deletedCount": deletedCount,
	})
}

// DeleteDonationBatch 按批次号删除整批
// DELETE /api/donations/batch/:batch_id
func DeleteDonationBatch(ctx context.Context, c *app.RequestContext) {
	batchID := c.Param("batch_id")

	deletedCount, err := service.Donation().DeleteBatch(ctx, batchID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	metrics.GetMetrics().RecordDeletion(ctx, "donation_batch", deletedCount)
	queue.LogOperation(model.OpTypeDonationDelete, map[string]interface{}{
		"batchId":      batchID,
		"deletedCount": deletedCount,
	}, c.ClientIP(), string(c.UserAgent()))

	response.Success(ctx, c, map[string]interface{}{
		"deletedCount": deletedCount,
	})
}

// DonationStats 捐献统计报表
// GET /api/donations/stats
func DonationStats(ctx context.Context, c *app.RequestContext) {
	var q dto.StatsQuery
	if err := c.BindQuery(&q); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	stats, err := service.Stats().DonationStats(ctx, q)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{
		"stats": stats,
	})
}
