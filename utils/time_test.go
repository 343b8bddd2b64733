package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-08-25")
	require.NoError(t, err)
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.August, got.Month())
	assert.Equal(t, 25, got.Day())

	_, err = ParseDate("08/25/2026")
	assert.Error(t, err)
}

func TestDayBoundaries(t *testing.T) {
	base := time.Date(2026, 8, 25, 14, 30, 45, 123, time.Local)

	start := StartOfDay(base)
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 0, start.Minute())
	assert.Equal(t, 0, start.Nanosecond())

	end := EndOfDay(base)
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.Equal(t, 59, end.Second())

	// 当天任意时刻都落在 [start, end] 闭区间内
	assert.True(t, !base.Before(start) && !base.After(end))

	assert.Equal(t, "2026-08-25", DayKey(base))
}
