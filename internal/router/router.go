package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"GongKe/config"
	"GongKe/internal/handler"
	"GongKe/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.SecureHeadersMiddleware())
	if config.Cfg.TracingEnabled {
		h.Use(middleware.OpenTelemetryMiddleware())
	}

	h.GET("/health", handler.Health)

	api := h.Group("/api")
	api.Use(middleware.GeneralRateLimitMiddleware())
	{
		api.GET("/test", handler.TestConnection)

		// 功课记录
		api.POST("/submit", handler.SubmitRecord)
		api.GET("/records", handler.ListRecords)
		api.PUT("/update", handler.UpdateRecord)
		api.DELETE("/delete", handler.DeleteRecord)
		api.GET("/stats", handler.PracticeStats)
		api.GET("/export/csv", handler.ExportPracticeCSV)
		api.GET("/export/json", handler.ExportPracticeJSON)

		// 捐献记录
		donations := api.Group("/donations")
		{
			donations.POST("", handler.SubmitDonations)
			donations.GET("", handler.ListDonations)
			donations.GET("/stats", handler.DonationStats)
			donations.GET("/export/csv", handler.ExportDonationCSV)
			donations.GET("/export/json", handler.ExportDonationJSON)
			donations.DELETE("/batch/:batch_id", handler.DeleteDonationBatch)
			donations.DELETE("/:id", handler.DeleteDonation)
		}

		// 审计日志，只有管理口令可读
		api.GET("/logs", middleware.AdminGateMiddleware(), handler.ListOperationLogs)
	}
}
