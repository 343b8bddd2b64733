package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SyncStatus 同步标记，服务端落库一律 synced
const (
	SyncStatusSynced = "synced"
)

// DefaultDeviceID 未标注来源的提交默认按网页端处理
const DefaultDeviceID = "web"

// PracticeRecord 一条功课提交记录。
// 计数项字段集合由配置决定（各表单变体不一致），统一放入 Counters；
// 未识别的额外字段原样保留在 Extra，不做封闭 schema 校验。
type PracticeRecord struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	Date        string                 `bson:"date" json:"date"`
	Name        string                 `bson:"name" json:"name"`
	Counters    map[string]int64       `bson:"counters" json:"counters"`
	Remark      string                 `bson:"remark,omitempty" json:"remark,omitempty"`
	DeviceID    string                 `bson:"deviceId" json:"deviceId"`
	SubmittedAt time.Time              `bson:"submittedAt" json:"submittedAt"`
	CreatedAt   time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time              `bson:"updatedAt" json:"updatedAt"`
	SyncStatus  string                 `bson:"syncStatus" json:"syncStatus"`
	Extra       map[string]interface{} `bson:"extra,omitempty" json:"extra,omitempty"`
}

// CounterTotal 返回各计数项之和，导出时作为派生"总计"列，不落库
func (r *PracticeRecord) CounterTotal(fields []string) int64 {
	var total int64
	for _, f := range fields {
		total += r.Counters[f]
	}
	return total
}

// counterLabels 计数项的人类可读列名（CSV 表头用）。
// 配置了未知计数项时回退为字段名本身。
var counterLabels = map[string]string{
	"nianfo":    "念佛",
	"diamond":   "金刚经",
	"dizang":    "地藏经",
	"yaoshi":    "药师经",
	"dabeizhou": "大悲咒",
	"xinjing":   "心经",
}

// CounterLabel 返回计数项的显示名
func CounterLabel(field string) string {
	if label, ok := counterLabels[field]; ok {
		return label
	}
	return field
}
