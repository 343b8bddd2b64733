package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GongKe/internal/model"
)

var testCounterFields = []string{"nianfo", "diamond"}

func practiceFixture(name, device string, submittedAt time.Time, nianfo, diamond int64) model.PracticeRecord {
	return model.PracticeRecord{
		Name:     name,
		DeviceID: device,
		Counters: map[string]int64{
			"nianfo":  nianfo,
			"diamond": diamond,
		},
		SubmittedAt: submittedAt,
	}
}

func TestGrowthRate(t *testing.T) {
	// 昨天为零的两个特判
	assert.Equal(t, "0.0%", GrowthRate(0, 0))
	assert.Equal(t, "100.0%", GrowthRate(0, 5))

	assert.Equal(t, "50.0%", GrowthRate(10, 15))
	assert.Equal(t, "-50.0%", GrowthRate(10, 5))
	assert.Equal(t, "0.0%", GrowthRate(10, 10))
	assert.Equal(t, "33.3%", GrowthRate(3, 4))
}

func TestComputePracticeStatsEmpty(t *testing.T) {
	stats := ComputePracticeStats(nil, testCounterFields, time.Now())

	assert.Equal(t, int64(0), stats.TotalRecords)
	assert.Equal(t, int64(0), stats.GrandTotal)
	assert.Equal(t, "0.0%", stats.GrowthRate)

	// 空结果集也要有完整结构：切片非 nil，计数项全零
	require.NotNil(t, stats.BySubmitter)
	require.NotNil(t, stats.ByDevice)
	require.NotNil(t, stats.ByDay)
	assert.Empty(t, stats.BySubmitter)
	assert.Equal(t, NumberStats{}, stats.Counters["nianfo"])
}

func TestComputePracticeStats(t *testing.T) {
	now := time.Date(2026, 8, 25, 15, 0, 0, 0, time.Local)
	yesterday := now.AddDate(0, 0, -1)

	records := []model.PracticeRecord{
		practiceFixture("张三", "web", now, 100, 2),
		practiceFixture("张三", "web", now, 50, 0),
		practiceFixture("李四", "miniapp", yesterday, 10, 1),
	}

	stats := ComputePracticeStats(records, testCounterFields, now)

	assert.Equal(t, int64(3), stats.TotalRecords)
	assert.Equal(t, int64(163), stats.GrandTotal)

	nianfo := stats.Counters["nianfo"]
	assert.Equal(t, float64(160), nianfo.Sum)
	assert.Equal(t, float64(10), nianfo.Min)
	assert.Equal(t, float64(100), nianfo.Max)
	assert.InDelta(t, 53.33, nianfo.Avg, 0.01)

	// 按提交人倒序，数量相同按名字排
	require.Len(t, stats.BySubmitter, 2)
	assert.Equal(t, GroupCount{Key: "张三", Count: 2}, stats.BySubmitter[0])

	// 昨天 1 条，今天 2 条
	assert.Equal(t, "100.0%", stats.GrowthRate)

	// 按天升序
	require.Len(t, stats.ByDay, 2)
	assert.True(t, stats.ByDay[0].Date < stats.ByDay[1].Date)
}

func TestComputeDonationStats(t *testing.T) {
	now := time.Date(2026, 8, 25, 15, 0, 0, 0, time.Local)

	records := []model.DonationRecord{
		{Name: "张三", Project: "建寺", AmountTWD: 600, AmountRMB: 0, Payment: "paid", DeviceID: "web", SubmittedAt: now},
		{Name: "李四", Project: "建寺", AmountTWD: 400, AmountRMB: 100, Payment: "unpaid", DeviceID: "web", SubmittedAt: now},
		{Name: "王五", Project: "印经", AmountTWD: 0, AmountRMB: 50, Payment: "paid", DeviceID: "miniapp", SubmittedAt: now},
	}

	stats := ComputeDonationStats(records, now)

	assert.Equal(t, int64(3), stats.TotalRecords)
	assert.Equal(t, float64(1000), stats.AmountTWD.Sum)
	assert.Equal(t, float64(150), stats.AmountRMB.Sum)

	require.Len(t, stats.ByProject, 2)
	assert.Equal(t, "建寺", stats.ByProject[0].Key)
	assert.Equal(t, int64(2), stats.ByProject[0].Count)
	assert.Equal(t, float64(1000), stats.ByProject[0].AmountTWD)

	require.Len(t, stats.ByPayment, 2)
	assert.Equal(t, int64(2), stats.ByPayment[0].Count)
}

func TestTopGroupsTruncation(t *testing.T) {
	m := map[string]int64{"a": 1, "b": 3, "c": 2, "d": 3}

	groups := topGroups(m, 2)
	require.Len(t, groups, 2)
	// 数量相同按键名升序保证结果稳定
	assert.Equal(t, GroupCount{Key: "b", Count: 3}, groups[0])
	assert.Equal(t, GroupCount{Key: "d", Count: 3}, groups[1])

	// limit 为 0 不截断
	assert.Len(t, topGroups(m, 0), 4)
}

func TestDailyWindowExcludesOldRecords(t *testing.T) {
	now := time.Date(2026, 8, 25, 15, 0, 0, 0, time.Local)
	old := now.AddDate(0, 0, -dailyWindowDays)

	records := []model.PracticeRecord{
		practiceFixture("张三", "web", now, 1, 0),
		practiceFixture("张三", "web", old, 1, 0),
	}

	stats := ComputePracticeStats(records, testCounterFields, now)

	// 窗口外的记录不进按天曲线，但总量照算
	assert.Equal(t, int64(2), stats.TotalRecords)
	require.Len(t, stats.ByDay, 1)
	assert.Equal(t, "2026-08-25", stats.ByDay[0].Date)
}
