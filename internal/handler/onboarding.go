package handler

import (
	"context"
	"encoding/json"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/sessions"
	"go.uber.org/zap"

	"SignMeUp/internal/model/dto"
	"SignMeUp/internal/service"
	pkgerrors "SignMeUp/pkg/errors"
	"SignMeUp/pkg/logger"
	"SignMeUp/pkg/response"
)

// draftSessionKey 草稿在会话中的键
const draftSessionKey = "wizard_draft"

// SubmitOnboarding 提交引导向导，按 email 创建或更新账号
// POST /v1/onboarding
func SubmitOnboarding(ctx context.Context, c *app.RequestContext) {
	var req dto.SubmitOnboardingRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	onboardingService := service.Onboarding()
	result, fieldErrors, err := onboardingService.Submit(ctx, req)
	if err != nil {
		if len(fieldErrors) > 0 {
			details := make(map[string]interface{}, len(fieldErrors))
			for field, msg := range fieldErrors {
				details[field] = msg
			}
			response.ErrorWithDetails(ctx, c, err, details)
			return
		}
		response.Error(ctx, c, err)
		return
	}

	// 提交成功后草稿没有存在的意义了
	clearDraft(c)

	response.Success(ctx, c, result)
}

// GetDraft 读取会话中的向导草稿
// GET /v1/onboarding/draft
func GetDraft(ctx context.Context, c *app.RequestContext) {
	session := sessions.Default(c)

	raw, ok := session.Get(draftSessionKey).(string)
	if !ok || raw == "" {
		response.Error(ctx, c, pkgerrors.DraftNotFound)
		return
	}

	var draft dto.WizardDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		// 损坏的草稿当作不存在，顺手清掉
		logger.Logger.Warn("Corrupted wizard draft in session", zap.Error(err))
		clearDraft(c)
		response.Error(ctx, c, pkgerrors.DraftNotFound)
		return
	}

	response.Success(ctx, c, draft)
}

// SaveDraft 覆盖保存会话中的向导草稿
// PUT /v1/onboarding/draft
func SaveDraft(ctx context.Context, c *app.RequestContext) {
	var draft dto.WizardDraft
	if err := c.Bind(&draft); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	raw, err := json.Marshal(draft)
	if err != nil {
		response.Error(ctx, c, pkgerrors.InternalFailure)
		return
	}

	session := sessions.Default(c)
	session.Set(draftSessionKey, string(raw))
	if err := session.Save(); err != nil {
		logger.Logger.Error("Failed to save wizard draft", zap.Error(err))
		response.Error(ctx, c, pkgerrors.InternalFailure)
		return
	}

	response.Success(ctx, c, draft)
}

// DeleteDraft 放弃会话中的向导草稿
// DELETE /v1/onboarding/draft
func DeleteDraft(ctx context.Context, c *app.RequestContext) {
	clearDraft(c)
	response.NoContent(ctx, c)
}

func clearDraft(c *app.RequestContext) {
	session := sessions.Default(c)
	session.Delete(draftSessionKey)
	if err := session.Save(); err != nil {
		logger.Logger.Warn("Failed to clear wizard draft", zap.Error(err))
	}
}
