package service

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"GongKe/internal/model/dto"
	"GongKe/internal/query"
	"GongKe/pkg/errors"
	"GongKe/storage/database"
)

// collection 先确保连接，再取集合句柄。
// 存储适配器是唯一管理连接状态的地方，service 层只消费句柄。
func collection(ctx context.Context, name string) (*mongo.Collection, error) {
	if _, err := database.EnsureConnected(ctx); err != nil {
		return nil, err
	}
	return database.Collection(name)
}

// storeError 将驱动错误翻译为业务错误
func storeError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return errors.DuplicateRecord
	}
	return err
}

func buildPagination(desc query.Descriptor, totalCount int64) dto.Pagination {
	totalPages := totalCount / desc.Limit
	if totalCount%desc.Limit != 0 {
		totalPages++
	}

	return dto.Pagination{
		Page:       desc.Page,
		Limit:      int(desc.Limit),
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
