package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"GongKe/internal/model/dto"
	"GongKe/pkg/errors"
)

func TestBuildPracticeDefaults(t *testing.T) {
	desc, err := BuildPractice(dto.ListQuery{})
	require.NoError(t, err)

	assert.Empty(t, desc.Filter)
	assert.Equal(t, int64(0), desc.Skip)
	assert.Equal(t, int64(DefaultPracticeLimit), desc.Limit)
	assert.Equal(t, 1, desc.Page)
	// 默认按提交时间倒序
	assert.Equal(t, bson.D{{Key: "submittedAt", Value: -1}}, desc.Sort)
}

func TestBuildPracticeSearchAndFilters(t *testing.T) {
	desc, err := BuildPractice(dto.ListQuery{
		Search:   "王",
		Name:     "王五",
		DeviceID: "miniapp",
	})
	require.NoError(t, err)

	assert.Equal(t, "王五", desc.Filter["name"])
	assert.Equal(t, "miniapp", desc.Filter["deviceId"])

	conds, ok := desc.Filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, conds, 2)
	// 模糊搜索覆盖 name 和 remark，大小写不敏感
	re, ok := conds[0]["name"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "i", re.Options)
}

func TestBuildPracticeSearchEscapesRegex(t *testing.T) {
	desc, err := BuildPractice(dto.ListQuery{Search: "a.b*"})
	require.NoError(t, err)

	conds := desc.Filter["$or"].([]bson.M)
	re := conds[0]["name"].(primitive.Regex)
	// 用户输入按字面量匹配，元字符必须被转义
	assert.Equal(t, `a\.b\*`, re.Pattern)
}

func TestDateRangeCoversWholeEndDay(t *testing.T) {
	desc, err := BuildPractice(dto.ListQuery{
		StartDate: "2026-08-01",
		EndDate:   "2026-08-25",
	})
	require.NoError(t, err)

	rangeCond, ok := desc.Filter["submittedAt"].(bson.M)
	require.True(t, ok)

	start := rangeCond["$gte"].(time.Time)
	end := rangeCond["$lte"].(time.Time)

	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Second())

	// endDate 当天 12:00 提交的记录必须落入区间
	noon := time.Date(2026, 8, 25, 12, 0, 0, 0, time.Local)
	assert.True(t, !noon.Before(start) && !noon.After(end))
}

func TestDateRangeMalformed(t *testing.T) {
	_, err := BuildPractice(dto.ListQuery{StartDate: "not-a-date"})
	assert.ErrorIs(t, err, errors.InvalidDateRange)

	_, err = BuildDonation(dto.ListQuery{EndDate: "2026/08/25"})
	assert.ErrorIs(t, err, errors.InvalidDateRange)
}

func TestPaginateBounds(t *testing.T) {
	desc, err := BuildDonation(dto.ListQuery{Page: 3, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(40), desc.Skip)
	assert.Equal(t, int64(20), desc.Limit)

	// limit 超上限被钳制
	desc, err = BuildDonation(dto.ListQuery{Limit: 9999})
	require.NoError(t, err)
	assert.Equal(t, int64(MaxLimit), desc.Limit)

	// 非法 page 回退到 1
	desc, err = BuildDonation(dto.ListQuery{Page: -2})
	require.NoError(t, err)
	assert.Equal(t, 1, desc.Page)
	assert.Equal(t, int64(0), desc.Skip)
	assert.Equal(t, int64(DefaultDonationLimit), desc.Limit)
}

func TestDonationIdentifierFilters(t *testing.T) {
	// 合法 ObjectID：先按主键，再按 localId，最后按 serverId
	oid := primitive.NewObjectID()
	filters := DonationIdentifierFilters(oid.Hex())
	require.Len(t, filters, 3)
	assert.Equal(t, oid, filters[0]["_id"])
	assert.Equal(t, oid.Hex(), filters[1]["localId"])
	assert.Equal(t, oid.Hex(), filters[2]["serverId"])

	// 非 ObjectID 形态跳过主键过滤器
	filters = DonationIdentifierFilters("srv_12345")
	require.Len(t, filters, 2)
	assert.Equal(t, "srv_12345", filters[0]["localId"])
	assert.Equal(t, "srv_12345", filters[1]["serverId"])
}
