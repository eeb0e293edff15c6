package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"SignMeUp/internal/model/dto"
	"SignMeUp/internal/service"
	"SignMeUp/pkg/response"
)

// GetConfig 获取当前向导布局
// GET /v1/config
func GetConfig(ctx context.Context, c *app.RequestContext) {
	configService := service.Config()
	result, err := configService.GetConfig(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ReplaceConfig 整体替换向导布局，任何校验违规拒绝整个请求
// PUT /v1/config
func ReplaceConfig(ctx context.Context, c *app.RequestContext) {
	var req dto.ReplaceConfigRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	configService := service.Config()
	result, err := configService.ReplaceConfig(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// PreviewConfig 宽松策略预览布局清洗结果，不落库
// POST /v1/config/preview
func PreviewConfig(ctx context.Context, c *app.RequestContext) {
	var req dto.ReplaceConfigRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	configService := service.Config()
	result, err := configService.PreviewConfig(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
