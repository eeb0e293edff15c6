package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"SignMeUp/internal/handler"
	"SignMeUp/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.RequestIDMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())

	h.GET("/healthz", handler.Healthz)

	v1 := h.Group("/v1")

	// 向导布局配置路由，管理端使用
	configGroup := v1.Group("/config")
	{
		configGroup.GET("", handler.GetConfig)
		configGroup.PUT("", middleware.ConfigWriteRateLimitMiddleware(), handler.ReplaceConfig)
		configGroup.POST("/preview", handler.PreviewConfig)
	}

	// 引导提交路由，草稿跟提交共用会话
	onboarding := v1.Group("/onboarding")
	onboarding.Use(middleware.SessionMiddleware())
	{
		onboarding.POST("", middleware.SubmissionRateLimitMiddleware(), handler.SubmitOnboarding)
		onboarding.GET("/draft", handler.GetDraft)
		onboarding.PUT("/draft", handler.SaveDraft)
		onboarding.DELETE("/draft", handler.DeleteDraft)
	}

	// 账号列表路由，管理端只读表格
	accounts := v1.Group("/accounts")
	{
		accounts.GET("", handler.ListAccounts)
	}
}
