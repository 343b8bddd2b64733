package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"GongKe/config"
	"GongKe/internal/queue"
	"GongKe/pkg/logger"
	"GongKe/storage"
	"GongKe/storage/mq"
)

// worker 进程只做一件事：消费审计日志队列并落盘。
// 未启用 RabbitMQ 时审计日志在 server 进程直写，worker 无事可做

func main() {

	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if !mq.Enabled() {
		logger.Logger.Fatal("RabbitMQ is disabled, nothing to consume; set RABBITMQ_ENABLED=true")
	}

	logger.Logger.Info("Worker service starting",
		zap.String("service", config.Cfg.ServiceName+"-worker"),
		zap.String("environment", config.Cfg.Environment),
	)

	go func() {
		if err := queue.StartOplogConsumer(ctx); err != nil {
			logger.Logger.Error("Oplog consumer stopped", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()

	logger.Logger.Info("Worker service shutting down gracefully")
}
