package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"GongKe/internal/model"
	"GongKe/internal/model/dto"
	"GongKe/internal/query"
	"GongKe/pkg/errors"
	"GongKe/pkg/snowflake"
	"GongKe/storage/database"
	"GongKe/utils"
)

type DonationService struct{}

var (
	donationService *DonationService
	donationOnce    sync.Once
)

func Donation() *DonationService {
	donationOnce.Do(func() {
		donationService = &DonationService{}
	})

	return donationService
}

// NormalizeEntry 归一化批次中的一条捐献。name 和 project 缺一即无效，
// 无效条目由调用方丢弃计数，不会使整批失败。
func (s *DonationService) NormalizeEntry(raw map[string]interface{}, batchID, deviceID string, now time.Time) (*model.DonationRecord, error) {
	name := utils.TrimString(raw["name"])
	project := utils.TrimString(raw["project"])
	if name == "" || project == "" {
		return nil, errors.ValidationFailed
	}

	localID := utils.TrimString(raw["localId"])
	if localID == "" {
		localID = uuid.NewString()
	}

	serverID, err := snowflake.NextServerID()
	if err != nil {
		return nil, err
	}

	if d := utils.TrimString(raw["deviceId"]); d != "" {
		deviceID = d
	}
	if deviceID == "" {
		deviceID = model.DefaultDeviceID
	}

	payment := utils.TrimString(raw["payment"])
	if payment == "" {
		payment = model.PaymentStatusUnpaid
	}

	return &model.DonationRecord{
		Name:        name,
		Project:     project,
		AmountTWD:   utils.CoerceAmount(raw["amountTWD"]),
		AmountRMB:   utils.CoerceAmount(raw["amountRMB"]),
		Payment:     payment,
		Contact:     utils.TrimString(raw["contact"]),
		Content:     utils.TrimString(raw["content"]),
		Method:      utils.TrimString(raw["method"]),
		LocalID:     localID,
		BatchID:     batchID,
		DeviceID:    deviceID,
		ServerID:    serverID,
		SubmittedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
		SyncStatus:  model.SyncStatusSynced,
		SyncVersion: 1,
	}, nil
}

// entriesOf 把单条与批量两种请求形态统一成条目数组
func entriesOf(req dto.DonationSubmitRequest) []map[string]interface{} {
	if len(req.Data) > 0 {
		return req.Data
	}

	entry := map[string]interface{}{
		"name":      req.Name,
		"project":   req.Project,
		"amountTWD": req.AmountTWD,
		"amountRMB": req.AmountRMB,
		"payment":   req.Payment,
		"contact":   req.Contact,
		"content":   req.Content,
		"method":    req.Method,
		"localId":   req.LocalID,
		"deviceId":  req.DeviceID,
	}
	return []map[string]interface{}{entry}
}

// SubmitBatch 批量落库。无效条目静默丢弃并计数，只要有一条成功即算成功；
// localId 撞唯一索引按重复投递处理
func (s *DonationService) SubmitBatch(ctx context.Context, req dto.DonationSubmitRequest) (*dto.BatchResult, error) {
	entries := entriesOf(req)
	if len(entries) == 0 {
		return nil, errors.BatchEmpty
	}

	batchID := req.BatchID
	if batchID == "" {
		batchID = uuid.NewString()
	}

	now := time.Now()
	records := make([]interface{}, 0, len(entries))
	failed := 0
	for _, raw := range entries {
		record, err := s.NormalizeEntry(raw, batchID, req.DeviceID, now)
		if err != nil {
			failed++
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, errors.BatchAllInvalid
	}

	coll, err := collection(ctx, database.CollDonationRecords)
	if err != nil {
		return nil, err
	}

	result, err := coll.InsertMany(ctx, records)
	if err != nil {
		return nil, storeError(err)
	}

	insertedIDs := make([]string, 0, len(result.InsertedIDs))
	for _, id := range result.InsertedIDs {
		if oid, ok := id.(primitive.ObjectID); ok {
			insertedIDs = append(insertedIDs, oid.Hex())
		}
	}

	out := &dto.BatchResult{
		BatchID:        batchID,
		SubmittedCount: len(result.InsertedIDs),
		FailedCount:    failed,
		InsertedIDs:    insertedIDs,
	}
	if failed > 0 {
		out.Warning = fmt.Sprintf("%d invalid record(s) dropped: name and project are required", failed)
	}

	return out, nil
}

// List 分页查询捐献记录
func (s *DonationService) List(ctx context.Context, q dto.ListQuery) ([]model.DonationRecord, dto.Pagination, error) {
	desc, err := query.BuildDonation(q)
	if err != nil {
		return nil, dto.Pagination{}, err
	}

	coll, err := collection(ctx, database.CollDonationRecords)
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

	records := make([]model.DonationRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, dto.Pagination{}, storeError(err)
	}

	return records, buildPagination(desc, totalCount), nil
}

// FindAll 取出过滤排序后的完整记录集，统计与导出使用
func (s *DonationService) FindAll(ctx context.Context, q dto.ListQuery) ([]model.DonationRecord, error) {
	desc, err := query.BuildDonation(q)
	if err != nil {
		return nil, err
	}

	coll, err := collection(ctx, database.CollDonationRecords)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, desc.Filter, options.Find().SetSort(desc.Sort))
	if err != nil {
		return nil, storeError(err)
	}
	defer cursor.Close(ctx)

	records := make([]model.DonationRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, storeError(err)
	}
	return records, nil
}

// Delete 按标识删除单条：依次尝试 Mongo 主键、localId、serverId
func (s *DonationService) Delete(ctx context.Context, id string) (int64, error) {
	coll, err := collection(ctx, database.CollDonationRecords)
	if err != nil {
		return 0, err
	}

	for _, filter := range query.DonationIdentifierFilters(id) {
		result, err := coll.DeleteOne(ctx, filter)
		if err != nil {
			return 0, storeError(err)
		}
		if result.DeletedCount > 0 {
			return result.DeletedCount, nil
		}
	}

	return 0, errors.RecordNotFound
}

// DeleteBatch 删除整批
func (s *DonationService) DeleteBatch(ctx context.Context, batchID string) (int64, error) {
	coll, err := collection(ctx, database.CollDonationRecords)
	if err != nil {
		return 0, err
	}

	result, err := coll.DeleteMany(ctx, bson.M{"batchId": batchID})
	if err != nil {
		return 0, storeError(err)
	}
	if result.DeletedCount == 0 {
		return 0, errors.RecordNotFound
	}
	return result.DeletedCount, nil
}

// DeleteAll 清空捐献记录，仅限管理口令校验通过后调用
func (s *DonationService) DeleteAll(ctx context.Context) (int64, error) {
	coll, err := collection(ctx, database.CollDonationRecords)
	if err != nil {
		return 0, err
	}

	result, err := coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, storeError(err)
	}
	return result.DeletedCount, nil
}
