package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceCount(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want int64
	}{
		{"nil", nil, 0},
		{"int", 42, 42},
		{"int64", int64(7), 7},
		{"float", 3.9, 3},
		{"json number", json.Number("108"), 108},
		{"numeric string", "21", 21},
		{"numeric string with spaces", "  15 ", 15},
		{"float string", "12.8", 12},
		{"garbage string", "abc", 0},
		{"empty string", "", 0},
		{"negative", -5, 0},
		{"negative string", "-3", 0},
		{"bool", true, 0},
		{"map", map[string]interface{}{"x": 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceCount(tt.in))
		})
	}
}

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want float64
	}{
		{"nil", nil, 0},
		{"int", 100, 100},
		{"float", 99.5, 99.5},
		{"string", "600.5", 600.5},
		{"garbage", "one hundred", 0},
		{"negative", -100.0, 0},
		{"slice", []int{1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceAmount(tt.in))
		})
	}
}

func TestTrimString(t *testing.T) {
	assert.Equal(t, "张三", TrimString("  张三  "))
	assert.Equal(t, "", TrimString(nil))
	assert.Equal(t, "", TrimString(123))
	assert.Equal(t, "", TrimString("   "))
}
