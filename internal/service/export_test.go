package service

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GongKe/internal/model"
	"GongKe/internal/model/dto"
)

func TestRenderPracticeCSV(t *testing.T) {
	submitted := time.Date(2026, 8, 25, 10, 30, 0, 0, time.Local)
	records := []model.PracticeRecord{
		{
			Date:        "2026-08-25",
			Name:        `张"三`,
			Counters:    map[string]int64{"nianfo": 108, "diamond": 3},
			Remark:      "回向, 众生",
			DeviceID:    "web",
			SubmittedAt: submitted,
		},
	}

	out := string(RenderPracticeCSV(records, []string{"nianfo", "diamond"}))

	// BOM 在最前，Excel 才认 UTF-8
	require.True(t, strings.HasPrefix(out, "\xEF\xBB\xBF"))

	lines := strings.Split(strings.TrimSuffix(out[3:], "\r\n"), "\r\n")
	require.Len(t, lines, 2)

	assert.Equal(t, `"日期","姓名","念佛","金刚经","总计","备注","设备","提交时间"`, lines[0])
	// 文本列带引号且内部引号双写；数字列裸值；总计为派生列
	assert.Equal(t, `"2026-08-25","张""三",108,3,111,"回向, 众生","web","2026-08-25 10:30:00"`, lines[1])
}

func TestRenderPracticeCSVUnknownCounterLabel(t *testing.T) {
	out := string(RenderPracticeCSV(nil, []string{"nianfo", "custom"}))
	// 未配置显示名的计数项回退为字段名
	assert.Contains(t, out, `"念佛","custom"`)
}

func TestRenderDonationCSV(t *testing.T) {
	submitted := time.Date(2026, 8, 25, 10, 30, 0, 0, time.Local)
	records := []model.DonationRecord{
		{
			Name:        "张三",
			Project:     "建寺",
			AmountTWD:   600.5,
			AmountRMB:   0,
			Payment:     "paid",
			Contact:     "0912345678",
			Content:     "全家平安",
			Method:      "转账",
			BatchID:     "batch-1",
			DeviceID:    "web",
			SubmittedAt: submitted,
		},
	}

	out := string(RenderDonationCSV(records))
	require.True(t, strings.HasPrefix(out, "\xEF\xBB\xBF"))

	lines := strings.Split(strings.TrimSuffix(out[3:], "\r\n"), "\r\n")
	require.Len(t, lines, 2)
	// 金额列不加引号，小数不补零
	assert.Equal(t, `"张三","建寺",600.5,0,"paid","0912345678","全家平安","转账","batch-1","web","2026-08-25 10:30:00"`, lines[1])
}

func TestJSONEnvelope(t *testing.T) {
	records := []model.PracticeRecord{
		{Date: "2026-08-25", Name: "张三", Counters: map[string]int64{"nianfo": 1}},
	}

	body, err := renderJSONEnvelope(records, len(records), dto.ListQuery{Name: "张三"})
	require.NoError(t, err)

	var envelope struct {
		ExportedAt  string                   `json:"exportedAt"`
		RecordCount int                      `json:"recordCount"`
		Filters     map[string]interface{}   `json:"filters"`
		Records     []map[string]interface{} `json:"records"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))

	assert.Equal(t, 1, envelope.RecordCount)
	assert.Equal(t, "张三", envelope.Filters["name"])
	require.Len(t, envelope.Records, 1)
	assert.Equal(t, "张三", envelope.Records[0]["name"])

	_, err = time.Parse(time.RFC3339, envelope.ExportedAt)
	assert.NoError(t, err)
}

func TestFilterSummaryOmitsEmpty(t *testing.T) {
	filters := FilterSummary(dto.ListQuery{
		Search:    "王",
		StartDate: "2026-08-01",
	})

	assert.Equal(t, map[string]interface{}{
		"search":    "王",
		"startDate": "2026-08-01",
	}, filters)

	assert.Empty(t, FilterSummary(dto.ListQuery{}))
}
