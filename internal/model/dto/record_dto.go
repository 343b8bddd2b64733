package dto

// ========== 记录查询 / 变更相关 DTO ==========

// ListQuery 列表查询参数，功课与捐献共用
type ListQuery struct {
	Search    string `query:"search"`
	Name      string `query:"name"`
	Date      string `query:"date"`
	Project   string `query:"project"`
	Payment   string `query:"payment"`
	DeviceID  string `query:"deviceId"`
	BatchID   string `query:"batchId"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
}

// StatsQuery 统计查询参数，仅日期范围
type StatsQuery struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

// DeleteRequest 删除请求，id 为 "all" 时需要管理口令
type DeleteRequest struct {
	ID         string `json:"id"`
	AdminToken string `json:"adminToken"`
}

// Pagination 列表响应中的分页信息
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int64 `json:"totalPages"`
}

// OplogQuery 审计日志查询参数
type OplogQuery struct {
	Type  string `query:"type"`
	Page  int    `query:"page"`
	Limit int    `query:"limit"`
}
