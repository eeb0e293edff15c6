package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"SignMeUp/internal/service"
	"SignMeUp/pkg/response"
)

// ListAccounts 只读账号列表，给管理端表格用
// GET /v1/accounts
func ListAccounts(ctx context.Context, c *app.RequestContext) {
	accountService := service.Account()
	result, err := accountService.ListAccounts(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
