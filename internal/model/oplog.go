package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 操作类型枚举
const (
	OpTypeSubmit         = "submit"
	OpTypeUpdate         = "update"
	OpTypeDelete         = "delete"
	OpTypeClear          = "clear"
	OpTypeExportCSV      = "export_csv"
	OpTypeExportJSON     = "export_json"
	OpTypeDonationSubmit = "donation_submit"
	OpTypeDonationDelete = "donation_delete"
)

// OperationLog 审计日志，追加写入，主流程写失败只记日志不报错
type OperationLog struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	Type      string                 `bson:"type" json:"type"`
	Payload   map[string]interface{} `bson:"payload,omitempty" json:"payload,omitempty"`
	Timestamp time.Time              `bson:"timestamp" json:"timestamp"`
	IP        string                 `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent string                 `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
}
