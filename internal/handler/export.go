package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"GongKe/internal/model"
	"GongKe/internal/model/dto"
	"GongKe/internal/queue"
	"GongKe/internal/service"
	"GongKe/pkg/metrics"
	"GongKe/pkg/response"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	jsonContentType = "application/json; charset=utf-8"
)

// ExportPracticeCSV 功课记录 CSV 下载
// GET /api/export/csv
func ExportPracticeCSV(ctx context.Context, c *app.RequestContext) {
	exportFile(ctx, c, "gongke", "csv", model.OpTypeExportCSV, service.Export().PracticeCSV)
}

// ExportPracticeJSON 功课记录 JSON 下载
// GET /api/export/json
func ExportPracticeJSON(ctx context.Context, c *app.RequestContext) {
	exportFile(ctx, c, "gongke", "json", model.OpTypeExportJSON, service.Export().PracticeJSON)
}

// ExportDonationCSV 捐献记录 CSV 下载
// GET /api/donations/export/csv
func ExportDonationCSV(ctx context.Context, c *app.RequestContext) {
	exportFile(ctx, c, "donations", "csv", model.OpTypeExportCSV, service.Export().DonationCSV)
}

// ExportDonationJSON 捐献记录 JSON 下载
// GET /api/donations/export/json
func ExportDonationJSON(ctx context.Context, c *app.RequestContext) {
	exportFile(ctx, c, "donations", "json", model.OpTypeExportJSON, service.Export().DonationJSON)
}

type exportFunc func(ctx context.Context, q dto.ListQuery) ([]byte, int, error)

// exportFile 统一导出流程：查询、渲染、下发附件、旁路审计
func exportFile(ctx context.Context, c *app.RequestContext, kind, format, opType string, render exportFunc) {
	var q dto.ListQuery
	if err := c.BindQuery(&q); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	body, count, err := render(ctx, q)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	contentType := csvContentType
	if format == "json" {
		contentType = jsonContentType
	}

	filename := fmt.Sprintf("%s_%s.%s", kind, time.Now().Format("20060102_150405"), format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	metrics.GetMetrics().RecordExport(ctx, kind, format)
	queue.LogOperation(opType, map[string]interface{}{
		"kind":        kind,
		"format":      format,
		"recordCount": count,
		"filters":     service.FilterSummary(q),
	}, c.ClientIP(), string(c.UserAgent()))

	c.Data(http.StatusOK, contentType, body)
}
