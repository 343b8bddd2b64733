package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 提交校验相关错误。
var (
	ValidationFailed = Definition{Code: "VALIDATION_FAILED", Message: "Missing required fields"}
	DateRequired     = Definition{Code: "DATE_REQUIRED", Message: "Field 'date' is required"}
	NameRequired     = Definition{Code: "NAME_REQUIRED", Message: "Field 'name' is required"}
	BatchEmpty       = Definition{Code: "BATCH_EMPTY", Message: "Batch contains no records"}
	BatchAllInvalid  = Definition{Code: "BATCH_ALL_INVALID", Message: "No valid records in batch"}
	InvalidRecordID  = Definition{Code: "INVALID_RECORD_ID", Message: "Invalid record identifier"}
	InvalidDateRange = Definition{Code: "INVALID_DATE_RANGE", Message: "Invalid date range"}
)

// 鉴权相关错误。
var (
	Unauthorized    = Definition{Code: "UNAUTHORIZED", Message: "Admin credential missing or invalid"}
	AdminTokenUnset = Definition{Code: "ADMIN_TOKEN_UNSET", Message: "Admin credential not configured"}
	TooManyRequests = Definition{Code: "TOO_MANY_REQUESTS", Message: "Too many requests"}
)

// 存储相关错误。
var (
	RecordNotFound   = Definition{Code: "RECORD_NOT_FOUND", Message: "Record not found"}
	DuplicateRecord  = Definition{Code: "DUPLICATE_RECORD", Message: "Record already submitted"}
	StoreUnavailable = Definition{Code: "STORE_UNAVAILABLE", Message: "Database connection unavailable"}
	NotConnected     = Definition{Code: "NOT_CONNECTED", Message: "Database not connected"}
)

// Internal 兜底错误，生产环境不回传细节。
var Internal = Definition{Code: "INTERNAL_ERROR", Message: "Internal server error"}

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	ValidationFailed.Code:  ValidationFailed,
	DateRequired.Code:      DateRequired,
	NameRequired.Code:      NameRequired,
	BatchEmpty.Code:        BatchEmpty,
	BatchAllInvalid.Code:   BatchAllInvalid,
	InvalidRecordID.Code:   InvalidRecordID,
	InvalidDateRange.Code:  InvalidDateRange,
	Unauthorized.Code:      Unauthorized,
	AdminTokenUnset.Code:   AdminTokenUnset,
	TooManyRequests.Code:   TooManyRequests,
	RecordNotFound.Code:    RecordNotFound,
	DuplicateRecord.Code:   DuplicateRecord,
	StoreUnavailable.Code:  StoreUnavailable,
	NotConnected.Code:      NotConnected,
	Internal.Code:          Internal,
}

// Get 根据错误码返回 Definition，若不存在则返回兜底 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}
