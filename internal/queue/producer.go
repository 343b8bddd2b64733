package queue

import (
	"context"
	"time"

	"go.uber.org/zap"

	"GongKe/internal/model"
	"GongKe/internal/service"
	"GongKe/pkg/logger"
	"GongKe/pkg/metrics"
	"GongKe/storage/mq"
)

// 审计日志是旁路写：主操作提交后异步派发一次写入尝试，
// 失败只记进程日志，绝不影响主响应。
// MQ 可用时投递给 worker 落盘，否则直写 Mongo 兜底。

const oplogWriteTimeout = 10 * time.Second

// LogOperation 发布一条审计日志，fire-and-forget
func LogOperation(opType string, payload map[string]interface{}, ip, userAgent string) {
	entry := &model.OperationLog{
		Type:      opType,
		Payload:   payload,
		Timestamp: time.Now(),
		IP:        ip,
		UserAgent: userAgent,
	}

	go dispatch(entry)
}

func dispatch(entry *model.OperationLog) {
	ctx, cancel := context.WithTimeout(context.Background(), oplogWriteTimeout)
	defer cancel()

	if mq.Enabled() {
		if err := mq.PublishMessage(mq.OplogExchange, mq.OplogRoutingKey, entry); err == nil {
			return
		} else {
			logger.Logger.Warn("Failed to publish operation log, falling back to direct write",
				zap.String("type", entry.Type),
				zap.Error(err),
			)
			metrics.GetMetrics().RecordOplogPublishFailure(ctx, "publish")
		}
	}

	if err := service.Oplog().Write(ctx, entry); err != nil {
		logger.Logger.Warn("Failed to write operation log, entry dropped",
			zap.String("type", entry.Type),
			zap.Error(err),
		)
		metrics.GetMetrics().RecordOplogPublishFailure(ctx, "direct_write")
	}
}
