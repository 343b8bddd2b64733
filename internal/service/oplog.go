package service

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"GongKe/internal/model"
	"GongKe/internal/model/dto"
	"GongKe/storage/database"
)

const defaultOplogLimit = 100

type OplogService struct{}

var (
	oplogService *OplogService
	oplogOnce    sync.Once
)

func Oplog() *OplogService {
	oplogOnce.Do(func() {
		oplogService = &OplogService{}
	})

	return oplogService
}

// Write 直写一条审计日志。调用方（queue 包）负责吞掉错误
func (s *OplogService) Write(ctx context.Context, entry *model.OperationLog) error {
	coll, err := collection(ctx, database.CollOperationLogs)
	if err != nil {
		return err
	}

	_, err = coll.InsertOne(ctx, entry)
	return err
}

// List 分页读取审计日志，仅管理口令校验通过后可达
func (s *OplogService) List(ctx context.Context, q dto.OplogQuery) ([]model.OperationLog, dto.Pagination, error) {
	filter := bson.M{}
	if q.Type != "" {
		filter["type"] = q.Type
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = defaultOplogLimit
	}

	coll, err := collection(ctx, database.CollOperationLogs)
	if err != nil {
		return nil, dto.Pagination{}, err
	}

	totalCount, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, dto.Pagination{}, storeError(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(int64(page-1) * int64(limit)).
		SetLimit(int64(limit))

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, dto.Pagination{}, storeError(err)
	}
	defer cursor.Close(ctx)

	entries := make([]model.OperationLog, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, dto.Pagination{}, storeError(err)
	}

	totalPages := totalCount / int64(limit)
	if totalCount%int64(limit) != 0 {
		totalPages++
	}

	return entries, dto.Pagination{
		Page:       page,
		Limit:      limit,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}, nil
}
