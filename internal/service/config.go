package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"SignMeUp/internal/cache"
	"SignMeUp/internal/model"
	"SignMeUp/internal/model/dto"
	"SignMeUp/internal/repository"
	"SignMeUp/internal/steps"
	pkgerrors "SignMeUp/pkg/errors"
	"SignMeUp/pkg/logger"
	"SignMeUp/pkg/metrics"
	"SignMeUp/storage/database"
)

var (
	configService *ConfigService
	configOnce    sync.Once
)

func Config() *ConfigService {
	configOnce.Do(func() {
		configService = NewConfigService(
			repository.NewPlacementRepository(database.DB()),
			true,
		)
	})
	return configService
}

// NewConfigService 测试可以注入假仓库并关掉缓存。
func NewConfigService(placements repository.PlacementRepository, useCache bool) *ConfigService {
	return &ConfigService{placements: placements, useCache: useCache}
}

type ConfigService struct {
	placements repository.PlacementRepository
	useCache   bool
}

// GetConfig 返回当前规范布局；一行都没有时返回内置默认布局。
func (s *ConfigService) GetConfig(ctx context.Context) (*dto.ConfigData, error) {
	if s.useCache {
		if cached, err := cache.GetConfig(ctx); err != nil {
			logger.Logger.Warn("Failed to read wizard config cache", zap.Error(err))
		} else if cached != nil {
			metrics.RecordConfigCacheHit(ctx)
			return configToDTO(*cached), nil
		}
	}

	rows, err := s.placements.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list step placements: %w", err)
	}

	var cfg steps.Configuration
	if len(rows) == 0 {
		cfg = steps.Default()
	} else {
		cfg = steps.FromPlacements(toPlacements(rows))
	}

	if s.useCache {
		if err := cache.SetConfig(ctx, &cfg); err != nil {
			logger.Logger.Warn("Failed to write wizard config cache", zap.Error(err))
		}
	}

	return configToDTO(cfg), nil
}

// ReplaceConfig 清洗并整体替换布局，任何校验违规都拒绝整个请求。
func (s *ConfigService) ReplaceConfig(ctx context.Context, req dto.ReplaceConfigRequest) (*dto.ConfigData, error) {
	canonical, err := steps.Normalize(toPageInputs(req.Pages))
	if err != nil {
		if def, ok := err.(pkgerrors.Definition); ok {
			metrics.RecordConfigReject(ctx, def.Code)
		}
		return nil, err
	}

	rows := make([]model.StepPlacement, 0, len(canonical.Placements()))
	for _, p := range canonical.Placements() {
		rows = append(rows, model.StepPlacement{PageNumber: p.PageNumber, Component: p.Component})
	}

	if err := s.placements.ReplaceAll(ctx, rows); err != nil {
		return nil, fmt.Errorf("failed to replace step placements: %w", err)
	}

	if s.useCache {
		if err := cache.InvalidateConfig(ctx); err != nil {
			logger.Logger.Warn("Failed to invalidate wizard config cache", zap.Error(err))
		}
	}

	metrics.RecordConfigReplace(ctx)
	logger.Logger.Info("Wizard configuration replaced",
		zap.Int("placements", len(rows)),
	)

	return configToDTO(canonical), nil
}

// PreviewConfig 宽松策略的预览：后到的重复认领被丢弃，不落库。
func (s *ConfigService) PreviewConfig(ctx context.Context, req dto.ReplaceConfigRequest) (*dto.ConfigData, error) {
	canonical, err := steps.NormalizeLenient(toPageInputs(req.Pages))
	if err != nil {
		return nil, err
	}
	return configToDTO(canonical), nil
}

func toPageInputs(pages []dto.PageLayout) []steps.PageInput {
	inputs := make([]steps.PageInput, 0, len(pages))
	for _, p := range pages {
		inputs = append(inputs, steps.PageInput{PageNumber: p.PageNumber, Components: p.Components})
	}
	return inputs
}

func toPlacements(rows []model.StepPlacement) []steps.Placement {
	out := make([]steps.Placement, 0, len(rows))
	for _, row := range rows {
		out = append(out, steps.Placement{PageNumber: row.PageNumber, Component: row.Component})
	}
	return out
}

func configToDTO(cfg steps.Configuration) *dto.ConfigData {
	pages := make([]dto.PageLayout, 0, len(cfg.Pages))
	for _, page := range cfg.Pages {
		comps := make([]string, 0, len(page.Components))
		for _, c := range page.Components {
			comps = append(comps, c.String())
		}
		pages = append(pages, dto.PageLayout{PageNumber: page.PageNumber, Components: comps})
	}
	return &dto.ConfigData{Pages: pages}
}
