package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"SignMeUp/internal/model"
	"SignMeUp/internal/model/dto"
	"SignMeUp/internal/repository"
	"SignMeUp/internal/steps"
	pkgerrors "SignMeUp/pkg/errors"
	"SignMeUp/pkg/logger"
	"SignMeUp/pkg/metrics"
	"SignMeUp/pkg/snowflake"
	"SignMeUp/storage/database"
	"SignMeUp/utils"
)

var (
	onboardingService *OnboardingService
	onboardingOnce    sync.Once
)

func Onboarding() *OnboardingService {
	onboardingOnce.Do(func() {
		db := database.DB()
		onboardingService = NewOnboardingService(
			repository.NewAccountRepository(db),
			repository.NewPlacementRepository(db),
			snowflake.NextID,
		)
	})
	return onboardingService
}

// SetOnboarding 仅用于测试注入。
func SetOnboarding(s *OnboardingService) {
	onboardingOnce.Do(func() {})
	onboardingService = s
}

// NewOnboardingService 测试可以注入假仓库和固定的 ID 生成器。
func NewOnboardingService(
	accounts repository.AccountRepository,
	placements repository.PlacementRepository,
	nextID func() (int64, error),
) *OnboardingService {
	return &OnboardingService{accounts: accounts, placements: placements, nextID: nextID}
}

type OnboardingService struct {
	accounts   repository.AccountRepository
	placements repository.PlacementRepository
	nextID     func() (int64, error)
}

// Submit 处理一次引导提交：解析启用步骤 -> 动态校验 -> 按 email upsert。
// 校验失败时第二个返回值携带 字段路径 -> 提示 的映射。
func (s *OnboardingService) Submit(
	ctx context.Context,
	req dto.SubmitOnboardingRequest,
) (*dto.SubmitOnboardingResponse, map[string]string, error) {
	start := time.Now()

	rows, err := s.placements.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list step placements: %w", err)
	}

	enabled, usedFallback := steps.Resolve(rowsToPlacements(rows))
	if usedFallback {
		metrics.RecordConfigFallback(ctx)
	}

	// 布局存在但并集为空时拒绝所有提交，绝不跳过校验放行
	if len(enabled) == 0 {
		metrics.RecordSubmission(ctx, "no_steps_enabled", time.Since(start).Seconds())
		return nil, nil, pkgerrors.NoStepsEnabled
	}

	schema := steps.BuildSchema(enabled)
	if fieldErrors := schema.Validate(toSubmission(req)); fieldErrors != nil {
		for field := range fieldErrors {
			metrics.RecordValidationFailure(ctx, field)
		}
		metrics.RecordSubmission(ctx, "validation_failed", time.Since(start).Seconds())
		return nil, fieldErrors, pkgerrors.ValidationFailed
	}

	if req.Email == "" {
		metrics.RecordSubmission(ctx, "email_required", time.Since(start).Seconds())
		return nil, nil, pkgerrors.EmailRequired
	}

	account, err := s.upsert(ctx, req, enabled)
	if err != nil {
		outcome := "error"
		if def, ok := err.(pkgerrors.Definition); ok {
			outcome = def.Code
		}
		metrics.RecordSubmission(ctx, outcome, time.Since(start).Seconds())
		return nil, nil, err
	}

	metrics.RecordSubmission(ctx, "ok", time.Since(start).Seconds())

	return &dto.SubmitOnboardingResponse{
		ID: strconv.FormatInt(account.PublicID, 10),
	}, nil, nil
}

// upsert 按 email 创建或更新账号。创建必须带密码，更新时密码可选，
// 未启用步骤的小节即使提交了也不落库。
func (s *OnboardingService) upsert(
	ctx context.Context,
	req dto.SubmitOnboardingRequest,
	enabled steps.Set,
) (*model.Account, error) {
	existing, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}

	if existing != nil {
		applyPatch(existing, req, enabled)
		if req.Password != "" {
			existing.Password = req.Password
		}
		existing.OnboardStep = model.OnboardStepDone

		if err := s.accounts.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update account: %w", err)
		}

		logger.Logger.Info("Onboarding submission updated account",
			zap.Int64("public_id", existing.PublicID),
		)
		return existing, nil
	}

	if req.Password == "" {
		return nil, pkgerrors.PasswordRequired
	}

	publicID, err := s.nextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate account id: %w", err)
	}

	account := &model.Account{
		PublicID:    publicID,
		Email:       req.Email,
		Password:    req.Password,
		OnboardStep: model.OnboardStepDone,
	}
	applyPatch(account, req, enabled)

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	logger.Logger.Info("Onboarding submission created account",
		zap.Int64("public_id", account.PublicID),
	)
	return account, nil
}

// applyPatch 把启用小节的内容拍平进账号记录。
// Birthdate 只做过形状校验，日历非法的串在这里被静默跳过。
func applyPatch(account *model.Account, req dto.SubmitOnboardingRequest, enabled steps.Set) {
	if enabled.Has(steps.StepAbout) && req.AboutMe != nil && req.AboutMe.Bio != nil && *req.AboutMe.Bio != "" {
		account.About = *req.AboutMe.Bio
	}

	if enabled.Has(steps.StepBirthdate) && req.Birthdate != nil && req.Birthdate.Date != "" {
		if parsed := utils.ParseDate(req.Birthdate.Date); parsed != nil {
			account.Birth = parsed
		}
	}

	// line2 仅参与前端展示，与原始表结构一致不落库
	if enabled.Has(steps.StepAddress) && req.Address != nil {
		account.Street = req.Address.Line1
		account.City = req.Address.City
		account.State = req.Address.State
		account.Zip = req.Address.Zip
	}
}

func toSubmission(req dto.SubmitOnboardingRequest) *steps.Submission {
	sub := &steps.Submission{
		Email:    req.Email,
		Password: req.Password,
	}
	if req.AboutMe != nil {
		sub.AboutMe = &steps.AboutMeSection{Bio: req.AboutMe.Bio}
	}
	if req.Birthdate != nil {
		sub.Birthdate = &steps.BirthdateSection{Date: req.Birthdate.Date}
	}
	if req.Address != nil {
		sub.Address = &steps.AddressSection{
			Line1: req.Address.Line1,
			Line2: req.Address.Line2,
			City:  req.Address.City,
			State: req.Address.State,
			Zip:   req.Address.Zip,
		}
	}
	return sub
}

func rowsToPlacements(rows []model.StepPlacement) []steps.Placement {
	out := make([]steps.Placement, 0, len(rows))
	for _, row := range rows {
		out = append(out, steps.Placement{PageNumber: row.PageNumber, Component: row.Component})
	}
	return out
}
