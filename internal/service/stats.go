package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"GongKe/config"
	"GongKe/internal/model"
	"GongKe/internal/model/dto"
	"GongKe/utils"
)

// 统计窗口与展示截断上限
const (
	dailyWindowDays = 30
	topCategories   = 20
	topDevices      = 10
)

type NumberStats struct {
	Sum float64 `json:"sum"`
	Avg float64 `json:"avg"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type GroupCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type ProjectStats struct {
	Key       string  `json:"key"`
	Count     int64   `json:"count"`
	AmountTWD float64 `json:"amountTWD"`
	AmountRMB float64 `json:"amountRMB"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// PracticeStats 功课统计报表。空结果集退化为全零结构，绝不缺字段
type PracticeStats struct {
	TotalRecords int64                  `json:"totalRecords"`
	Counters     map[string]NumberStats `json:"counters"`
	GrandTotal   int64                  `json:"grandTotal"`
	BySubmitter  []GroupCount           `json:"bySubmitter"`
	ByDevice     []GroupCount           `json:"byDevice"`
	ByDay        []DayCount             `json:"byDay"`
	GrowthRate   string                 `json:"growthRate"`
}

// DonationStats 捐献统计报表
type DonationStats struct {
	TotalRecords int64          `json:"totalRecords"`
	AmountTWD    NumberStats    `json:"amountTWD"`
	AmountRMB    NumberStats    `json:"amountRMB"`
	ByProject    []ProjectStats `json:"byProject"`
	ByPayment    []GroupCount   `json:"byPayment"`
	BySubmitter  []GroupCount   `json:"bySubmitter"`
	ByDevice     []GroupCount   `json:"byDevice"`
	ByDay        []DayCount     `json:"byDay"`
	GrowthRate   string         `json:"growthRate"`
}

type StatsService struct{}

var (
	statsService *StatsService
	statsOnce    sync.Once
)

func Stats() *StatsService {
	statsOnce.Do(func() {
		statsService = &StatsService{}
	})

	return statsService
}

// PracticeStats 按日期范围过滤后对记录集做一次遍历求全部指标
func (s *StatsService) PracticeStats(ctx context.Context, q dto.StatsQuery) (*PracticeStats, error) {
	records, err := Practice().FindAll(ctx, dto.ListQuery{StartDate: q.StartDate, EndDate: q.EndDate})
	if err != nil {
		return nil, err
	}
	return ComputePracticeStats(records, config.Cfg.CounterFields(), time.Now()), nil
}

// DonationStats 捐献统计
func (s *StatsService) DonationStats(ctx context.Context, q dto.StatsQuery) (*DonationStats, error) {
	records, err := Donation().FindAll(ctx, dto.ListQuery{StartDate: q.StartDate, EndDate: q.EndDate})
	if err != nil {
		return nil, err
	}
	return ComputeDonationStats(records, time.Now()), nil
}

// ComputePracticeStats 纯内存统计，便于测试
func ComputePracticeStats(records []model.PracticeRecord, counterFields []string, now time.Time) *PracticeStats {
	stats := &PracticeStats{
		TotalRecords: int64(len(records)),
		Counters:     make(map[string]NumberStats, len(counterFields)),
		BySubmitter:  []GroupCount{},
		ByDevice:     []GroupCount{},
		ByDay:        []DayCount{},
	}

	sums := make(map[string]*numberAcc, len(counterFields))
	for _, f := range counterFields {
		sums[f] = &numberAcc{}
	}

	submitters := map[string]int64{}
	devices := map[string]int64{}
	days := map[string]int64{}

	for i := range records {
		r := &records[i]
		for _, f := range counterFields {
			v := float64(r.Counters[f])
			sums[f].add(v)
			stats.GrandTotal += r.Counters[f]
		}
		submitters[r.Name]++
		devices[r.DeviceID]++
		if inWindow(r.SubmittedAt, now) {
			days[utils.DayKey(r.SubmittedAt)]++
		}
	}

	for _, f := range counterFields {
		stats.Counters[f] = sums[f].finish()
	}

	stats.BySubmitter = topGroups(submitters, topCategories)
	stats.ByDevice = topGroups(devices, topDevices)
	stats.ByDay = dayCounts(days)
	stats.GrowthRate = GrowthRate(days[utils.DayKey(now.AddDate(0, 0, -1))], days[utils.DayKey(now)])

	return stats
}

// ComputeDonationStats 纯内存统计，便于测试
func ComputeDonationStats(records []model.DonationRecord, now time.Time) *DonationStats {
	stats := &DonationStats{
		TotalRecords: int64(len(records)),
		ByProject:    []ProjectStats{},
		ByPayment:    []GroupCount{},
		BySubmitter:  []GroupCount{},
		ByDevice:     []GroupCount{},
		ByDay:        []DayCount{},
	}

	twd := &numberAcc{}
	rmb := &numberAcc{}

	type projAcc struct {
		count    int64
		twd, rmb float64
	}
	projects := map[string]*projAcc{}
	payments := map[string]int64{}
	submitters := map[string]int64{}
	devices := map[string]int64{}
	days := map[string]int64{}

	for i := range records {
		r := &records[i]
		twd.add(r.AmountTWD)
		rmb.add(r.AmountRMB)

		acc := projects[r.Project]
		if acc == nil {
			acc = &projAcc{}
			projects[r.Project] = acc
		}
		acc.count++
		acc.twd += r.AmountTWD
		acc.rmb += r.AmountRMB

		payments[r.Payment]++
		submitters[r.Name]++
		devices[r.DeviceID]++
		if inWindow(r.SubmittedAt, now) {
			days[utils.DayKey(r.SubmittedAt)]++
		}
	}

	stats.AmountTWD = twd.finish()
	stats.AmountRMB = rmb.finish()

	for key, acc := range projects {
		stats.ByProject = append(stats.ByProject, ProjectStats{
			Key: key, Count: acc.count, AmountTWD: acc.twd, AmountRMB: acc.rmb,
		})
	}
	sort.Slice(stats.ByProject, func(i, j int) bool {
		if stats.ByProject[i].Count != stats.ByProject[j].Count {
			return stats.ByProject[i].Count > stats.ByProject[j].Count
		}
		return stats.ByProject[i].Key < stats.ByProject[j].Key
	})
	if len(stats.ByProject) > topCategories {
		stats.ByProject = stats.ByProject[:topCategories]
	}

	stats.ByPayment = topGroups(payments, 0)
	stats.BySubmitter = topGroups(submitters, topCategories)
	stats.ByDevice = topGroups(devices, topDevices)
	stats.ByDay = dayCounts(days)
	stats.GrowthRate = GrowthRate(days[utils.DayKey(now.AddDate(0, 0, -1))], days[utils.DayKey(now)])

	return stats
}

// GrowthRate 日环比增长率，保留一位小数。
// 昨天为零：今天也为零报 "0.0%"，今天大于零报 "100.0%"
func GrowthRate(yesterday, today int64) string {
	if yesterday == 0 {
		if today > 0 {
			return "100.0%"
		}
		return "0.0%"
	}
	rate := float64(today-yesterday) / float64(yesterday) * 100
	return fmt.Sprintf("%.1f%%", rate)
}

type numberAcc struct {
	sum, min, max float64
	count         int64
}

func (a *numberAcc) add(v float64) {
	if a.count == 0 || v < a.min {
		a.min = v
	}
	if a.count == 0 || v > a.max {
		a.max = v
	}
	a.sum += v
	a.count++
}

func (a *numberAcc) finish() NumberStats {
	if a.count == 0 {
		return NumberStats{}
	}
	return NumberStats{
		Sum: a.sum,
		Avg: a.sum / float64(a.count),
		Min: a.min,
		Max: a.max,
	}
}

func inWindow(t time.Time, now time.Time) bool {
	cutoff := utils.StartOfDay(now).AddDate(0, 0, -(dailyWindowDays - 1))
	return !t.Before(cutoff) && !t.After(utils.EndOfDay(now))
}

// topGroups 按数量倒序，limit 为 0 时不截断。
// 截断只作用于展示性分组，总量指标从不截断
func topGroups(m map[string]int64, limit int) []GroupCount {
	groups := make([]GroupCount, 0, len(m))
	for k, v := range m {
		groups = append(groups, GroupCount{Key: k, Count: v})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}

// dayCounts 按天分组，日期升序方便画折线
func dayCounts(m map[string]int64) []DayCount {
	days := make([]DayCount, 0, len(m))
	for k, v := range m {
		days = append(days, DayCount{Date: k, Count: v})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}
