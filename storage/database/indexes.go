package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"GongKe/pkg/logger"
)

// ensureIndexes 在连接建立后补建索引，重复创建是幂等操作。
// localId 的唯一索引是捐献提交幂等性的前提：离线端重放同一批次
// 必须撞索引报重复，而不是二次入库
func ensureIndexes(ctx context.Context, d *mongo.Database) error {
	donationIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "localId", Value: 1}},
			Options: options.Index().SetName("uniq_local_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "batchId", Value: 1}},
			Options: options.Index().SetName("idx_batch_id"),
		},
		{
			Keys:    bson.D{{Key: "submittedAt", Value: -1}},
			Options: options.Index().SetName("idx_submitted_at"),
		},
	}
	if _, err := d.Collection(CollDonationRecords).Indexes().CreateMany(ctx, donationIndexes); err != nil {
		return err
	}

	practiceIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "submittedAt", Value: -1}},
			Options: options.Index().SetName("idx_submitted_at"),
		},
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("idx_name"),
		},
	}
	if _, err := d.Collection(CollPracticeRecords).Indexes().CreateMany(ctx, practiceIndexes); err != nil {
		return err
	}

	oplogIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_timestamp"),
		},
	}
	if _, err := d.Collection(CollOperationLogs).Indexes().CreateMany(ctx, oplogIndexes); err != nil {
		return err
	}

	logger.Logger.Info("Database indexes ensured")
	return nil
}
