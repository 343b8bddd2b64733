package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"GongKe/internal/model"
	"GongKe/internal/service"
	"GongKe/pkg/logger"
	"GongKe/storage/mq"
)

// StartOplogConsumer 消费审计日志队列并落盘到 Mongo，worker 进程使用
func StartOplogConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var entry model.OperationLog
		if err := json.Unmarshal(body, &entry); err != nil {
			// 无法解析的消息直接丢弃，重投也不会成功
			logger.Logger.Error("Dropping malformed oplog message", zap.Error(err))
			return nil
		}

		if entry.Timestamp.IsZero() {
			entry.Timestamp = time.Now()
		}

		writeCtx, cancel := context.WithTimeout(ctx, oplogWriteTimeout)
		defer cancel()

		if err := service.Oplog().Write(writeCtx, &entry); err != nil {
			return fmt.Errorf("failed to persist oplog entry: %w", err)
		}

		return nil
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         mq.OplogQueue,
		ConsumerTag:   "oplog_consumer",
		PrefetchCount: 10,
		Handler:       handler,
	})
}
