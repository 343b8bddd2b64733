package dto

// ========== 捐献提交相关 DTO ==========

// DonationSubmitRequest 支持单条与批量两种形态：
// 单条时直接平铺字段，批量时使用 data 数组并共享 batchId / deviceId
type DonationSubmitRequest struct {
	Data     []map[string]interface{} `json:"data"`
	BatchID  string                   `json:"batchId"`
	DeviceID string                   `json:"deviceId"`

	// 单条提交字段
	Name      string      `json:"name"`
	Project   string      `json:"project"`
	AmountTWD interface{} `json:"amountTWD"`
	AmountRMB interface{} `json:"amountRMB"`
	Payment   string      `json:"payment"`
	Contact   string      `json:"contact"`
	Content   string      `json:"content"`
	Method    string      `json:"method"`
	LocalID   string      `json:"localId"`
}

// BatchResult 批量提交结果：部分成功也算成功，但要报出丢弃数量
type BatchResult struct {
	BatchID        string   `json:"batchId"`
	SubmittedCount int      `json:"submittedCount"`
	FailedCount    int      `json:"failedCount"`
	InsertedIDs    []string `json:"insertedIds"`
	Warning        string   `json:"warning,omitempty"`
}
