package query

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"GongKe/internal/model/dto"
	"GongKe/pkg/errors"
	"GongKe/utils"
)

// 将 HTTP 查询参数翻译为 Mongo 过滤/排序/分页描述符。
// 本包只做构造，不触碰数据库。

const (
	DefaultPracticeLimit = 50
	DefaultDonationLimit = 100
	MaxLimit             = 500

	defaultSortField = "submittedAt"
)

// Descriptor 店内可直接消费的查询描述符
type Descriptor struct {
	Filter bson.M
	Sort   bson.D
	Skip   int64
	Limit  int64
	Page   int
}

// BuildPractice 构造功课记录的查询描述符
func BuildPractice(q dto.ListQuery) (Descriptor, error) {
	filter := bson.M{}

	if q.Search != "" {
		filter["$or"] = searchConditions(q.Search, []string{"name", "remark"})
	}

	// 精确过滤只对出现且非空的参数生效
	addEq(filter, "name", q.Name)
	addEq(filter, "date", q.Date)
	addEq(filter, "deviceId", q.DeviceID)

	if err := addDateRange(filter, q.StartDate, q.EndDate); err != nil {
		return Descriptor{}, err
	}

	return paginate(filter, q, DefaultPracticeLimit), nil
}

// BuildDonation 构造捐献记录的查询描述符
func BuildDonation(q dto.ListQuery) (Descriptor, error) {
	filter := bson.M{}

	if q.Search != "" {
		filter["$or"] = searchConditions(q.Search, []string{"name", "contact", "content"})
	}

	addEq(filter, "project", q.Project)
	addEq(filter, "payment", q.Payment)
	addEq(filter, "deviceId", q.DeviceID)
	addEq(filter, "batchId", q.BatchID)

	if err := addDateRange(filter, q.StartDate, q.EndDate); err != nil {
		return Descriptor{}, err
	}

	return paginate(filter, q, DefaultDonationLimit), nil
}

// DonationIdentifierFilters 删除捐献记录时依次尝试的过滤器：
// Mongo 主键 -> localId -> serverId
func DonationIdentifierFilters(id string) []bson.M {
	filters := make([]bson.M, 0, 3)

	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		filters = append(filters, bson.M{"_id": oid})
	}
	filters = append(filters, bson.M{"localId": id})
	filters = append(filters, bson.M{"serverId": id})

	return filters
}

func searchConditions(search string, fields []string) []bson.M {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	conds := make([]bson.M, 0, len(fields))
	for _, f := range fields {
		conds = append(conds, bson.M{f: pattern})
	}
	return conds
}

func addEq(filter bson.M, field, value string) {
	if value != "" {
		filter[field] = value
	}
}

// addDateRange 按提交时间构造闭区间。endDate 归一化到当天最后一刻，
// 纯日期输入也能覆盖全天
func addDateRange(filter bson.M, startDate, endDate string) error {
	if startDate == "" && endDate == "" {
		return nil
	}

	rangeCond := bson.M{}

	if startDate != "" {
		start, err := utils.ParseDate(startDate)
		if err != nil {
			return errors.InvalidDateRange
		}
		rangeCond["$gte"] = utils.StartOfDay(start)
	}

	if endDate != "" {
		end, err := utils.ParseDate(endDate)
		if err != nil {
			return errors.InvalidDateRange
		}
		rangeCond["$lte"] = utils.EndOfDay(end)
	}

	filter["submittedAt"] = rangeCond
	return nil
}

func paginate(filter bson.M, q dto.ListQuery, defaultLimit int) Descriptor {
	page := q.Page
	if page < 1 {
		page = 1
	}

	limit := q.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	sortField := q.SortBy
	if sortField == "" {
		sortField = defaultSortField
	}

	order := -1 // 默认按提交时间倒序
	if q.SortOrder == "asc" {
		order = 1
	}

	return Descriptor{
		Filter: filter,
		Sort:   bson.D{{Key: sortField, Value: order}},
		Skip:   int64(page-1) * int64(limit),
		Limit:  int64(limit),
		Page:   page,
	}
}
