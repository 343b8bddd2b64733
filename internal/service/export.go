package service

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"GongKe/config"
	"GongKe/internal/model"
	"GongKe/internal/model/dto"
)

// utf8BOM Excel 识别中文需要的字节序标记，必须写在文件最前
const utf8BOM = "\xEF\xBB\xBF"

const timeLayout = "2006-01-02 15:04:05"

type ExportService struct{}

var (
	exportService *ExportService
	exportOnce    sync.Once
)

func Export() *ExportService {
	exportOnce.Do(func() {
		exportService = &ExportService{}
	})

	return exportService
}

// PracticeCSV 导出过滤排序后的功课记录
func (s *ExportService) PracticeCSV(ctx context.Context, q dto.ListQuery) ([]byte, int, error) {
	records, err := Practice().FindAll(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return RenderPracticeCSV(records, config.Cfg.CounterFields()), len(records), nil
}

// DonationCSV 导出过滤排序后的捐献记录
func (s *ExportService) DonationCSV(ctx context.Context, q dto.ListQuery) ([]byte, int, error) {
	records, err := Donation().FindAll(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return RenderDonationCSV(records), len(records), nil
}

// PracticeJSON 带导出元信息的 JSON 信封
func (s *ExportService) PracticeJSON(ctx context.Context, q dto.ListQuery) ([]byte, int, error) {
	records, err := Practice().FindAll(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	body, err := renderJSONEnvelope(records, len(records), q)
	return body, len(records), err
}

// DonationJSON 带导出元信息的 JSON 信封
func (s *ExportService) DonationJSON(ctx context.Context, q dto.ListQuery) ([]byte, int, error) {
	records, err := Donation().FindAll(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	body, err := renderJSONEnvelope(records, len(records), q)
	return body, len(records), err
}

// RenderPracticeCSV 生成 CSV 字节流：BOM + 中文表头 + 逐行记录。
// 文本列一律双引号包裹，内部引号双写转义；数字列不加引号；
// "总计"列为各计数项之和，导出时现算，不落库
func RenderPracticeCSV(records []model.PracticeRecord, counterFields []string) []byte {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	header := []string{"日期", "姓名"}
	for _, f := range counterFields {
		header = append(header, model.CounterLabel(f))
	}
	header = append(header, "总计", "备注", "设备", "提交时间")
	writeCSVRow(&buf, header, nil)

	for i := range records {
		r := &records[i]
		text := map[int]bool{}
		row := make([]string, 0, len(header))

		text[len(row)] = true
		row = append(row, r.Date)
		text[len(row)] = true
		row = append(row, r.Name)
		for _, f := range counterFields {
			row = append(row, strconv.FormatInt(r.Counters[f], 10))
		}
		row = append(row, strconv.FormatInt(r.CounterTotal(counterFields), 10))
		text[len(row)] = true
		row = append(row, r.Remark)
		text[len(row)] = true
		row = append(row, r.DeviceID)
		text[len(row)] = true
		row = append(row, r.SubmittedAt.Format(timeLayout))

		writeCSVRow(&buf, row, text)
	}

	return buf.Bytes()
}

// RenderDonationCSV 生成捐献记录 CSV
func RenderDonationCSV(records []model.DonationRecord) []byte {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	header := []string{"姓名", "项目", "金额(台币)", "金额(人民币)", "缴付状态", "联络方式", "内容", "方式", "批次", "设备", "提交时间"}
	writeCSVRow(&buf, header, nil)

	for i := range records {
		r := &records[i]
		text := map[int]bool{}
		row := make([]string, 0, len(header))

		appendText := func(s string) {
			text[len(row)] = true
			row = append(row, s)
		}

		appendText(r.Name)
		appendText(r.Project)
		row = append(row, formatAmount(r.AmountTWD))
		row = append(row, formatAmount(r.AmountRMB))
		appendText(r.Payment)
		appendText(r.Contact)
		appendText(r.Content)
		appendText(r.Method)
		appendText(r.BatchID)
		appendText(r.DeviceID)
		appendText(r.SubmittedAt.Format(timeLayout))

		writeCSVRow(&buf, row, text)
	}

	return buf.Bytes()
}

// writeCSVRow text 标记哪些列是文本列需要引号包裹；nil 表示全部是文本（表头）
func writeCSVRow(buf *bytes.Buffer, fields []string, text map[int]bool) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if text == nil || text[i] {
			buf.WriteByte('"')
			buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
			buf.WriteByte('"')
		} else {
			buf.WriteString(f)
		}
	}
	buf.WriteString("\r\n")
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// exportEnvelope JSON 导出信封
type exportEnvelope struct {
	ExportedAt  string                 `json:"exportedAt"`
	RecordCount int                    `json:"recordCount"`
	Filters     map[string]interface{} `json:"filters"`
	Records     interface{}            `json:"records"`
}

func renderJSONEnvelope(records interface{}, count int, q dto.ListQuery) ([]byte, error) {
	return json.MarshalIndent(exportEnvelope{
		ExportedAt:  time.Now().Format(time.RFC3339),
		RecordCount: count,
		Filters:     FilterSummary(q),
		Records:     records,
	}, "", "  ")
}

// FilterSummary 只保留实际生效的过滤参数，审计日志与导出信封共用
func FilterSummary(q dto.ListQuery) map[string]interface{} {
	filters := map[string]interface{}{}
	put := func(k, v string) {
		if v != "" {
			filters[k] = v
		}
	}
	put("search", q.Search)
	put("name", q.Name)
	put("date", q.Date)
	put("project", q.Project)
	put("payment", q.Payment)
	put("deviceId", q.DeviceID)
	put("batchId", q.BatchID)
	put("startDate", q.StartDate)
	put("endDate", q.EndDate)
	return filters
}
