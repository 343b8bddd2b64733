package database

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"GongKe/config"
	"GongKe/pkg/errors"
	"GongKe/pkg/logger"
)

// 固定的集合名
const (
	CollPracticeRecords = "practice_records"
	CollDonationRecords = "donation_records"
	CollOperationLogs   = "operation_logs"
)

// ConnState 连接状态机：Disconnected -> Connecting -> Connected -> Disconnected
type ConnState int32

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
)

var (
	mu     sync.RWMutex
	client *mongo.Client
	db     *mongo.Database
	state  ConnState

	healthOnce sync.Once
	healthStop chan struct{}
)

// Init 首次建立连接并启动后台健康检查。
// 连接失败不会阻止进程启动，后续请求通过 EnsureConnected 再次尝试。
func Init() error {
	if _, err := EnsureConnected(context.Background()); err != nil {
		logger.Logger.Warn("Initial MongoDB connection failed, will retry in background",
			zap.Error(err),
		)
	}

	healthOnce.Do(func() {
		healthStop = make(chan struct{})
		go healthLoop()
	})

	return nil
}

// EnsureConnected 是其余组件获取数据库句柄的唯一入口。
// 已连接时直接复用缓存句柄；否则带上限重试（默认 3 次，间隔 2 秒），
// 用尽后返回 StoreUnavailable。
func EnsureConnected(ctx context.Context) (*mongo.Database, error) {
	mu.RLock()
	if state == StateConnected && db != nil {
		cached := db
		mu.RUnlock()
		return cached, nil
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()

	// 双重检查，避免并发重连
	if state == StateConnected && db != nil {
		return db, nil
	}

	state = StateConnecting

	cfg := config.Cfg
	retryDelay := time.Duration(cfg.MongoRetryDelay) * time.Second

	var lastErr error
	for attempt := 1; attempt <= cfg.MongoMaxRetries; attempt++ {
		c, err := dial(ctx)
		if err == nil {
			client = c
			db = c.Database(cfg.MongoDatabase)
			state = StateConnected
			logger.Logger.Info("MongoDB connected",
				zap.String("database", cfg.MongoDatabase),
				zap.Int("attempt", attempt),
			)

			// 索引每次重连后补建；失败不阻断连接，下次重连再试
			if err := ensureIndexes(ctx, db); err != nil {
				logger.Logger.Warn("Failed to ensure indexes, duplicate detection degraded",
					zap.Error(err),
				)
			}

			return db, nil
		}

		lastErr = err
		logger.Logger.Warn("MongoDB connection attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", cfg.MongoMaxRetries),
			zap.Error(err),
		)

		if attempt < cfg.MongoMaxRetries {
			select {
			case <-ctx.Done():
				state = StateDisconnected
				return nil, ctx.Err()
			case <-time.After(retryDelay):
			}
		}
	}

	state = StateDisconnected
	logger.Logger.Error("MongoDB connection retries exhausted", zap.Error(lastErr))
	return nil, errors.StoreUnavailable
}

func dial(ctx context.Context) (*mongo.Client, error) {
	cfg := config.Cfg

	connectTimeout := time.Duration(cfg.MongoConnectTimeout) * time.Second
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetConnectTimeout(connectTimeout).
		SetSocketTimeout(time.Duration(cfg.MongoSocketTimeout) * time.Second).
		SetServerSelectionTimeout(connectTimeout)

	dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	c, err := mongo.Connect(dialCtx, opts)
	if err != nil {
		return nil, err
	}

	if err := c.Ping(dialCtx, readpref.Primary()); err != nil {
		_ = c.Disconnect(context.Background())
		return nil, err
	}

	return c, nil
}

// Collection 返回集合句柄，未连接时返回 NotConnected
func Collection(name string) (*mongo.Collection, error) {
	mu.RLock()
	defer mu.RUnlock()

	if state != StateConnected || db == nil {
		return nil, errors.NotConnected
	}
	return db.Collection(name), nil
}

// State 返回当前连接状态
func State() ConnState {
	mu.RLock()
	defer mu.RUnlock()
	return state
}

// Ping 供健康检查使用
func Ping(ctx context.Context) error {
	mu.RLock()
	c := client
	connected := state == StateConnected
	mu.RUnlock()

	if !connected || c == nil {
		return errors.NotConnected
	}
	return c.Ping(ctx, readpref.Primary())
}

// ListCollections 供 /api/test 诊断接口使用
func ListCollections(ctx context.Context) (string, []string, error) {
	d, err := EnsureConnected(ctx)
	if err != nil {
		return "", nil, err
	}

	names, err := d.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return d.Name(), nil, err
	}
	return d.Name(), names, nil
}

// healthLoop 定期检查连接；仅在断开时尝试重连，失败只记日志，绝不向调用方传播
func healthLoop() {
	interval := time.Duration(config.Cfg.MongoHealthInterval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-healthStop:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := Ping(ctx)
		cancel()

		if err == nil {
			continue
		}

		markDisconnected()

		reconnectCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := EnsureConnected(reconnectCtx); err != nil {
			logger.Logger.Warn("Background reconnect failed", zap.Error(err))
		}
		cancel()
	}
}

func markDisconnected() {
	mu.Lock()
	defer mu.Unlock()
	if state == StateConnected {
		state = StateDisconnected
		logger.Logger.Warn("MongoDB connection lost, marked disconnected")
	}
}

// Close 优雅断开连接
func Close(ctx context.Context) error {
	if healthStop != nil {
		close(healthStop)
	}

	mu.Lock()
	defer mu.Unlock()

	if client == nil {
		return nil
	}

	done := make(chan error, 1)
	c := client
	go func() {
		done <- c.Disconnect(context.Background())
	}()

	client = nil
	db = nil
	state = StateDisconnected

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
