package utils

import (
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate 解析 YYYY-MM-DD 日期字符串
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// StartOfDay 返回该日期 00:00:00.000
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay 返回该日期 23:59:59.999，日期型 endDate 需覆盖全天
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// DayKey 返回按天分组的键（YYYY-MM-DD）
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}
