package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics OpenTelemetry 指标集合
type OTelMetrics struct {
	// 记录提交相关指标
	RecordsSubmittedTotal  metric.Int64Counter
	DonationEntriesTotal   metric.Int64Counter
	DonationDroppedTotal   metric.Int64Counter
	RecordsDeletedTotal    metric.Int64Counter
	ExportsGeneratedTotal  metric.Int64Counter
	OplogPublishFailsTotal metric.Int64Counter
}

var (
	// 全局指标实例
	metrics *OTelMetrics
	// meter 用于创建指标
	meter = otel.Meter("gongke")
)

// InitMetrics 初始化 OpenTelemetry 指标
func InitMetrics() error {
	var err error

	metrics = &OTelMetrics{}

	metrics.RecordsSubmittedTotal, err = meter.Int64Counter(
		"practice_records_submitted_total",
		metric.WithDescription("Total number of practice records submitted"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return err
	}

	metrics.DonationEntriesTotal, err = meter.Int64Counter(
		"donation_entries_total",
		metric.WithDescription("Total number of donation entries accepted"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return err
	}

	metrics.DonationDroppedTotal, err = meter.Int64Counter(
		"donation_entries_dropped_total",
		metric.WithDescription("Total number of donation entries dropped during validation"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return err
	}

	metrics.RecordsDeletedTotal, err = meter.Int64Counter(
		"records_deleted_total",
		metric.WithDescription("Total number of records deleted"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return err
	}

	metrics.ExportsGeneratedTotal, err = meter.Int64Counter(
		"exports_generated_total",
		metric.WithDescription("Total number of export files generated"),
		metric.WithUnit("{export}"),
	)
	if err != nil {
		return err
	}

	metrics.OplogPublishFailsTotal, err = meter.Int64Counter(
		"oplog_publish_fails_total",
		metric.WithDescription("Total number of operation log publish failures"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// GetMetrics 获取全局指标实例，未初始化时返回 nil
func GetMetrics() *OTelMetrics {
	return metrics
}

// RecordSubmission 记录一次功课提交
func (m *OTelMetrics) RecordSubmission(ctx context.Context, deviceID string) {
	if m == nil {
		return
	}
	m.RecordsSubmittedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("device_id", deviceID),
	))
}

// RecordDonationBatch 记录一次随喜批量提交的接受/丢弃数量
func (m *OTelMetrics) RecordDonationBatch(ctx context.Context, accepted, dropped int64) {
	if m == nil {
		return
	}
	if accepted > 0 {
		m.DonationEntriesTotal.Add(ctx, accepted)
	}
	if dropped > 0 {
		m.DonationDroppedTotal.Add(ctx, dropped)
	}
}

// RecordDeletion 记录删除操作
func (m *OTelMetrics) RecordDeletion(ctx context.Context, kind string, count int64) {
	if m == nil {
		return
	}
	m.RecordsDeletedTotal.Add(ctx, count, metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

// RecordExport 记录导出文件生成
func (m *OTelMetrics) RecordExport(ctx context.Context, kind, format string) {
	if m == nil {
		return
	}
	m.ExportsGeneratedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("format", format),
	))
}

// RecordOplogPublishFailure 记录操作日志投递失败
func (m *OTelMetrics) RecordOplogPublishFailure(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.OplogPublishFailsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}
