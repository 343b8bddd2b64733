package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GongKe/internal/model"
	"GongKe/internal/model/dto"
	"GongKe/pkg/errors"
	"GongKe/pkg/snowflake"
)

func TestMain(m *testing.M) {
	// serverId 生成依赖雪花节点
	if err := snowflake.Init(1, 1); err != nil {
		panic(err)
	}
	m.Run()
}

func TestNormalizeEntryRequiredFields(t *testing.T) {
	now := time.Now()

	_, err := Donation().NormalizeEntry(map[string]interface{}{
		"project": "建寺",
	}, "batch-1", "web", now)
	assert.ErrorIs(t, err, errors.ValidationFailed)

	_, err = Donation().NormalizeEntry(map[string]interface{}{
		"name": "张三",
	}, "batch-1", "web", now)
	assert.ErrorIs(t, err, errors.ValidationFailed)
}

func TestNormalizeEntryDefaults(t *testing.T) {
	now := time.Now()

	record, err := Donation().NormalizeEntry(map[string]interface{}{
		"name":      "张三",
		"project":   "建寺",
		"amountTWD": "600",
		"amountRMB": "bad-value",
	}, "batch-1", "", now)
	require.NoError(t, err)

	assert.Equal(t, "batch-1", record.BatchID)
	assert.Equal(t, model.DefaultDeviceID, record.DeviceID)
	assert.Equal(t, model.PaymentStatusUnpaid, record.Payment)
	assert.Equal(t, float64(600), record.AmountTWD)
	assert.Equal(t, float64(0), record.AmountRMB)
	assert.Equal(t, 1, record.SyncVersion)

	// 未带 localId 时服务端补一个，serverId 必有
	assert.NotEmpty(t, record.LocalID)
	assert.True(t, strings.HasPrefix(record.ServerID, "srv_"))
}

func TestNormalizeEntryKeepsClientLocalID(t *testing.T) {
	record, err := Donation().NormalizeEntry(map[string]interface{}{
		"name":     "张三",
		"project":  "建寺",
		"localId":  "client-uuid-1",
		"deviceId": "miniapp",
	}, "batch-1", "web", time.Now())
	require.NoError(t, err)

	assert.Equal(t, "client-uuid-1", record.LocalID)
	// 条目级 deviceId 覆盖批次级
	assert.Equal(t, "miniapp", record.DeviceID)
}

func TestEntriesOfUnifiesShapes(t *testing.T) {
	// 批量形态直接取 data
	batch := dto.DonationSubmitRequest{
		Data: []map[string]interface{}{
			{"name": "a"}, {"name": "b"},
		},
	}
	assert.Len(t, entriesOf(batch), 2)

	// 单条形态折叠成一个条目
	single := dto.DonationSubmitRequest{
		Name:      "张三",
		Project:   "建寺",
		AmountTWD: 600,
	}
	entries := entriesOf(single)
	require.Len(t, entries, 1)
	assert.Equal(t, "张三", entries[0]["name"])
	assert.Equal(t, "建寺", entries[0]["project"])
	assert.Equal(t, 600, entries[0]["amountTWD"])
}

func TestBatchPartitioning(t *testing.T) {
	// SubmitBatch 的丢弃逻辑在落库前完成，这里只验证划分部分
	now := time.Now()
	entries := []map[string]interface{}{
		{"name": "张三", "project": "建寺"},
		{"name": "", "project": "建寺"},
		{"name": "李四", "project": "印经"},
		{},
	}

	valid, failed := 0, 0
	for _, raw := range entries {
		if _, err := Donation().NormalizeEntry(raw, "batch-1", "web", now); err != nil {
			failed++
			continue
		}
		valid++
	}

	assert.Equal(t, 2, valid)
	assert.Equal(t, 2, failed)
}
