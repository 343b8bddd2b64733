package utils

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CoerceCount 宽松解析计数值：数字、数字字符串都接受，
// 解析失败、缺失、负数一律归零，绝不报错
func CoerceCount(v interface{}) int64 {
	var n int64
	switch val := v.(type) {
	case nil:
		return 0
	case int:
		n = int64(val)
	case int32:
		n = int64(val)
	case int64:
		n = val
	case float64:
		n = int64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0
		}
		n = int64(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		n = int64(f)
	default:
		return 0
	}

	if n < 0 {
		return 0
	}
	return n
}

// CoerceAmount 宽松解析金额，失败与负数归零
func CoerceAmount(v interface{}) float64 {
	var f float64
	switch val := v.(type) {
	case nil:
		return 0
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case float64:
		f = val
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if f < 0 {
		return 0
	}
	return f
}

// TrimString 从任意输入中取出去除首尾空白的字符串
func TrimString(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
