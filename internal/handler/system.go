package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"GongKe/pkg/response"
	"GongKe/storage/database"
)

var startTime = time.Now()

// Health 存活探针，同时上报存储连通状态
// GET /health
func Health(ctx context.Context, c *app.RequestContext) {
	status := "ok"
	store := connStateName(database.State())
	if err := database.Ping(ctx); err != nil {
		// 存储掉线不影响进程存活，探针仍回 200
		status = "degraded"
		store = "disconnected"
	}

	response.Success(ctx, c, map[string]interface{}{
		"status":    status,
		"store":     store,
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    formatUptime(time.Since(startTime)),
	})
}

// TestConnection 存储连通性诊断，回报库名与集合列表
// GET /api/test
func TestConnection(ctx context.Context, c *app.RequestContext) {
	name, collections, err := database.ListCollections(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{
		"message": "Database connection OK",
		"database": map[string]interface{}{
			"name":        name,
			"collections": collections,
		},
	})
}

func connStateName(s database.ConnState) string {
	switch s {
	case database.StateConnected:
		return "connected"
	case database.StateConnecting:
		return "connecting"
	default:
		return "disconnected"
	}
}

func formatUptime(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", h, m, s)
}
