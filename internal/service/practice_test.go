package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"GongKe/internal/model"
	"GongKe/pkg/errors"
)

func TestNormalizeRejectsMissingRequired(t *testing.T) {
	_, err := Practice().Normalize(map[string]interface{}{"name": "张三"})
	assert.ErrorIs(t, err, errors.DateRequired)

	_, err = Practice().Normalize(map[string]interface{}{"date": "2026-08-25"})
	assert.ErrorIs(t, err, errors.NameRequired)

	// 全空白等同缺失
	_, err = Practice().Normalize(map[string]interface{}{"date": "2026-08-25", "name": "   "})
	assert.ErrorIs(t, err, errors.NameRequired)
}

func TestNormalizeCoercesCounters(t *testing.T) {
	record, err := Practice().Normalize(map[string]interface{}{
		"date":    "2026-08-25",
		"name":    "张三",
		"nianfo":  "108",
		"diamond": 3.7,
		"dizang":  "not a number",
		"yaoshi":  -2,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(108), record.Counters["nianfo"])
	assert.Equal(t, int64(3), record.Counters["diamond"])
	// 解析失败与负数一律归零，不报错
	assert.Equal(t, int64(0), record.Counters["dizang"])
	assert.Equal(t, int64(0), record.Counters["yaoshi"])
	// 未提交的计数项也归零
	assert.Equal(t, int64(0), record.Counters["dabeizhou"])
}

func TestNormalizeDefaultsAndTimestamps(t *testing.T) {
	record, err := Practice().Normalize(map[string]interface{}{
		"date": "2026-08-25",
		"name": "  李四  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "李四", record.Name)
	assert.Equal(t, model.DefaultDeviceID, record.DeviceID)
	assert.Equal(t, model.SyncStatusSynced, record.SyncStatus)

	// 三个时间戳取同一时刻
	assert.True(t, record.SubmittedAt.Equal(record.CreatedAt))
	assert.True(t, record.CreatedAt.Equal(record.UpdatedAt))
}

func TestNormalizeKeepsExtraFields(t *testing.T) {
	record, err := Practice().Normalize(map[string]interface{}{
		"date":      "2026-08-25",
		"name":      "张三",
		"nianfo":    10,
		"remark":    "回向",
		"customTag": "v2-form",
	})
	require.NoError(t, err)

	assert.Equal(t, "回向", record.Remark)
	// 未识别字段进 Extra，保留字段和计数项不进
	assert.Equal(t, map[string]interface{}{"customTag": "v2-form"}, record.Extra)

	record, err = Practice().Normalize(map[string]interface{}{
		"date": "2026-08-25",
		"name": "张三",
	})
	require.NoError(t, err)
	assert.Nil(t, record.Extra)
}

func TestBuildUpdateSetValidatesRequired(t *testing.T) {
	// name/date 不允许改空，更新必须维持必填不变式
	_, err := buildUpdateSet(map[string]interface{}{"name": "   "}, time.Now())
	assert.ErrorIs(t, err, errors.NameRequired)

	_, err = buildUpdateSet(map[string]interface{}{"date": ""}, time.Now())
	assert.ErrorIs(t, err, errors.DateRequired)

	set, err := buildUpdateSet(map[string]interface{}{
		"name": " 李四 ",
		"date": "2026-08-26",
	}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "李四", set["name"])
	assert.Equal(t, "2026-08-26", set["date"])
}

func TestBuildUpdateSetSkipsServerFields(t *testing.T) {
	now := time.Now()
	set, err := buildUpdateSet(map[string]interface{}{
		"id":          "x",
		"_id":         "y",
		"createdAt":   "z",
		"submittedAt": "w",
		"updatedAt":   "v",
		"syncStatus":  "pending",
	}, now)
	require.NoError(t, err)

	// 服务端字段全部跳过，只剩 updatedAt 刷新
	assert.Equal(t, bson.M{"updatedAt": now}, set)
}

func TestBuildUpdateSetRoutesCountersAndExtra(t *testing.T) {
	set, err := buildUpdateSet(map[string]interface{}{
		"nianfo":    "21",
		"dizang":    "bad",
		"remark":    " 回向 ",
		"customTag": "v2",
	}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, int64(21), set["counters.nianfo"])
	assert.Equal(t, int64(0), set["counters.dizang"])
	assert.Equal(t, "回向", set["remark"])

	// 未识别字段与 Normalize 同路落在 extra 下，顶层不留副本
	assert.Equal(t, "v2", set["extra.customTag"])
	_, topLevel := set["customTag"]
	assert.False(t, topLevel)
}

func TestExtraFieldVisibleAfterUpdate(t *testing.T) {
	// extra.* 点路径与 PracticeRecord 的 bson 标签一致，
	// 更新后的值必须能被类型化读路径解码出来
	raw, err := bson.Marshal(bson.M{
		"date":  "2026-08-25",
		"name":  "张三",
		"extra": bson.M{"customTag": "v2"},
	})
	require.NoError(t, err)

	var record model.PracticeRecord
	require.NoError(t, bson.Unmarshal(raw, &record))
	assert.Equal(t, "v2", record.Extra["customTag"])
}
