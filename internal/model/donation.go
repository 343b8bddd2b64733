package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatusUnpaid 新提交的默认缴付状态
const PaymentStatusUnpaid = "unpaid"

// DonationRecord 一条随喜/功德捐献记录，可能来自离线端的批量补传。
// LocalID 是客户端生成的幂等标识，ServerID 是服务端生成的唯一标识，
// 两者都独立于 Mongo 的 _id。
type DonationRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Project     string             `bson:"project" json:"project"`
	AmountTWD   float64            `bson:"amountTWD" json:"amountTWD"`
	AmountRMB   float64            `bson:"amountRMB" json:"amountRMB"`
	Payment     string             `bson:"payment" json:"payment"`
	Contact     string             `bson:"contact,omitempty" json:"contact,omitempty"`
	Content     string             `bson:"content,omitempty" json:"content,omitempty"`
	Method      string             `bson:"method,omitempty" json:"method,omitempty"`
	LocalID     string             `bson:"localId" json:"localId"`
	BatchID     string             `bson:"batchId" json:"batchId"`
	DeviceID    string             `bson:"deviceId" json:"deviceId"`
	ServerID    string             `bson:"serverId" json:"serverId"`
	SubmittedAt time.Time          `bson:"submittedAt" json:"submittedAt"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
	SyncStatus  string             `bson:"syncStatus" json:"syncStatus"`
	SyncVersion int                `bson:"syncVersion" json:"syncVersion"`
}
