package service

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"GongKe/config"
	"GongKe/internal/model"
	"GongKe/internal/model/dto"
	"GongKe/internal/query"
	"GongKe/pkg/errors"
	"GongKe/storage/database"
	"GongKe/utils"
)

type PracticeService struct{}

var (
	practiceService *PracticeService
	practiceOnce    sync.Once
)

func Practice() *PracticeService {
	practiceOnce.Do(func() {
		practiceService = &PracticeService{}
	})

	return practiceService
}

// 归一化时排除的保留字段，其余未识别字段进入 Extra
var practiceReserved = map[string]bool{
	"date": true, "name": true, "remark": true, "deviceId": true,
	"submittedAt": true, "createdAt": true, "updatedAt": true,
	"syncStatus": true, "_id": true, "id": true,
}

// Normalize 校验并归一化一条原始提交。
// date/name 缺失或为空直接拒绝；计数项宽松转整，失败一律归零；
// 四个时间字段取同一个 now，syncStatus 固定 synced。
func (s *PracticeService) Normalize(raw map[string]interface{}) (*model.PracticeRecord, error) {
	date := utils.TrimString(raw["date"])
	if date == "" {
		return nil, errors.DateRequired
	}

	name := utils.TrimString(raw["name"])
	if name == "" {
		return nil, errors.NameRequired
	}

	counterFields := config.Cfg.CounterFields()
	counters := make(map[string]int64, len(counterFields))
	for _, field := range counterFields {
		counters[field] = utils.CoerceCount(raw[field])
	}

	deviceID := utils.TrimString(raw["deviceId"])
	if deviceID == "" {
		deviceID = model.DefaultDeviceID
	}

	extra := make(map[string]interface{})
	for k, v := range raw {
		if practiceReserved[k] {
			continue
		}
		if _, isCounter := counters[k]; isCounter {
			continue
		}
		extra[k] = v
	}
	if len(extra) == 0 {
		extra = nil
	}

	now := time.Now()
	return &model.PracticeRecord{
		Date:        date,
		Name:        name,
		Counters:    counters,
		Remark:      utils.TrimString(raw["remark"]),
		DeviceID:    deviceID,
		SubmittedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
		SyncStatus:  model.SyncStatusSynced,
		Extra:       extra,
	}, nil
}

// Submit 落库一条功课记录，返回记录 ID
func (s *PracticeService) Submit(ctx context.Context, raw map[string]interface{}) (string, *model.PracticeRecord, error) {
	record, err := s.Normalize(raw)
	if err != nil {
		return "", nil, err
	}

	coll, err := collection(ctx, database.CollPracticeRecords)
	if err != nil {
		return "", nil, err
	}

	result, err := coll.InsertOne(ctx, record)
	if err != nil {
		return "", nil, storeError(err)
	}

	oid, _ := result.InsertedID.(primitive.ObjectID)
	return oid.Hex(), record, nil
}

// List 分页查询功课记录
func (s *PracticeService) List(ctx context.Context, q dto.ListQuery) ([]model.PracticeRecord, dto.Pagination, error) {
	desc, err := query.BuildPractice(q)
	if err != nil {
		return nil, dto.Pagination{}, err
	}

	coll, err := collection(ctx, database.CollPracticeRecords)
	if err != nil {
		return nil, dto.Pagination{}, err
	}

	totalCount, err := coll.CountDocuments(ctx, desc.Filter)
	if err != nil {
		return nil, dto.Pagination{}, storeError(err)
	}

	opts := options.Find().
		SetSort(desc.Sort).
		SetSkip(desc.Skip).
		SetLimit(desc.Limit)

	cursor, err := coll.Find(ctx, desc.Filter, opts)
	if err != nil {
		return nil, dto.Pagination{}, storeError(err)
	}
	defer cursor.Close(ctx)

	records := make([]model.PracticeRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, dto.Pagination{}, storeError(err)
	}

	return records, buildPagination(desc, totalCount), nil
}

// FindAll 取出过滤排序后的完整记录集，统计与导出使用
func (s *PracticeService) FindAll(ctx context.Context, q dto.ListQuery) ([]model.PracticeRecord, error) {
	desc, err := query.BuildPractice(q)
	if err != nil {
		return nil, err
	}

	coll, err := collection(ctx, database.CollPracticeRecords)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, desc.Filter, options.Find().SetSort(desc.Sort))
	if err != nil {
		return nil, storeError(err)
	}
	defer cursor.Close(ctx)

	records := make([]model.PracticeRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, storeError(err)
	}
	return records, nil
}

// buildUpdateSet 把客户端提交的部分更新翻译成 $set 文档。
// 服务端管理的字段不接受覆盖；name/date 不允许改空；
// 计数项与未识别字段的落点和 Normalize 保持一致，
// 否则更新对典型读路径不可见
func buildUpdateSet(fields map[string]interface{}, now time.Time) (bson.M, error) {
	set := bson.M{"updatedAt": now}

	counters := map[string]bool{}
	for _, f := range config.Cfg.CounterFields() {
		counters[f] = true
	}

	for k, v := range fields {
		switch {
		case k == "id" || k == "_id" || k == "createdAt" || k == "submittedAt" ||
			k == "updatedAt" || k == "syncStatus":
			// 服务端字段，跳过
		case k == "date":
			date := utils.TrimString(v)
			if date == "" {
				return nil, errors.DateRequired
			}
			set["date"] = date
		case k == "name":
			name := utils.TrimString(v)
			if name == "" {
				return nil, errors.NameRequired
			}
			set["name"] = name
		case k == "remark":
			set["remark"] = utils.TrimString(v)
		case k == "deviceId":
			device := utils.TrimString(v)
			if device == "" {
				device = model.DefaultDeviceID
			}
			set["deviceId"] = device
		case counters[k]:
			set["counters."+k] = utils.CoerceCount(v)
		default:
			set["extra."+k] = v
		}
	}

	return set, nil
}

// Update 按 _id 做部分字段替换并刷新 updatedAt
func (s *PracticeService) Update(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, errors.InvalidRecordID
	}

	set, err := buildUpdateSet(fields, time.Now())
	if err != nil {
		return 0, err
	}

	coll, err := collection(ctx, database.CollPracticeRecords)
	if err != nil {
		return 0, err
	}

	result, err := coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return 0, storeError(err)
	}
	if result.MatchedCount == 0 {
		return 0, errors.RecordNotFound
	}

	return result.ModifiedCount, nil
}

// Delete 按 _id 删除单条记录
func (s *PracticeService) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, errors.InvalidRecordID
	}

	coll, err := collection(ctx, database.CollPracticeRecords)
	if err != nil {
		return 0, err
	}

	result, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, storeError(err)
	}
	if result.DeletedCount == 0 {
		return 0, errors.RecordNotFound
	}

	return result.DeletedCount, nil
}

// DeleteAll 清空功课记录，仅限管理口令校验通过后调用
func (s *PracticeService) DeleteAll(ctx context.Context) (int64, error) {
	coll, err := collection(ctx, database.CollPracticeRecords)
	if err != nil {
		return 0, err
	}

	result, err := coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, storeError(err)
	}
	return result.DeletedCount, nil
}
