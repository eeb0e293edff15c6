package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignMeUp/internal/model"
	"SignMeUp/internal/model/dto"
	pkgerrors "SignMeUp/pkg/errors"
)

func TestGetConfigReturnsDefaultWhenUnconfigured(t *testing.T) {
	initTestLogger(t)
	svc := NewConfigService(&fakePlacementRepo{}, false)

	result, err := svc.GetConfig(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Pages, 2)
	assert.Equal(t, []string{"about", "birthdate"}, result.Pages[0].Components)
	assert.Equal(t, []string{"address"}, result.Pages[1].Components)
}

func TestGetConfigReflectsStoredRows(t *testing.T) {
	initTestLogger(t)
	svc := NewConfigService(&fakePlacementRepo{rows: []model.StepPlacement{
		{PageNumber: 2, Component: "address"},
		{PageNumber: 3, Component: "about"},
		{PageNumber: 3, Component: "birthdate"},
	}}, false)

	result, err := svc.GetConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"address"}, result.Pages[0].Components)
	assert.Equal(t, []string{"about", "birthdate"}, result.Pages[1].Components)
}

func TestReplaceConfigPersistsCanonicalRows(t *testing.T) {
	initTestLogger(t)
	repo := &fakePlacementRepo{}
	svc := NewConfigService(repo, false)

	result, err := svc.ReplaceConfig(context.Background(), dto.ReplaceConfigRequest{
		Pages: []dto.PageLayout{
			{PageNumber: 3, Components: []string{"Address"}},
			{PageNumber: 2, Components: []string{"birthdate", "ABOUT", "about"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"birthdate", "about"}, result.Pages[0].Components)

	require.Len(t, repo.rows, 3)
	assert.Equal(t, model.StepPlacement{PageNumber: 2, Component: "birthdate"}, repo.rows[0])
	assert.Equal(t, model.StepPlacement{PageNumber: 3, Component: "address"}, repo.rows[2])
}

func TestReplaceConfigRejectsCrossPageDuplicate(t *testing.T) {
	initTestLogger(t)
	repo := &fakePlacementRepo{rows: []model.StepPlacement{
		{PageNumber: 2, Component: "about"},
	}}
	svc := NewConfigService(repo, false)

	_, err := svc.ReplaceConfig(context.Background(), dto.ReplaceConfigRequest{
		Pages: []dto.PageLayout{
			{PageNumber: 2, Components: []string{"about", "birthdate"}},
			{PageNumber: 3, Components: []string{"birthdate"}},
		},
	})
	require.Error(t, err)
	def, ok := err.(pkgerrors.Definition)
	require.True(t, ok)
	assert.Equal(t, pkgerrors.ConfigComponentDuplicate.Code, def.Code)

	// 被拒绝的请求不能动原有布局
	assert.Len(t, repo.rows, 1)
}

func TestPreviewConfigDoesNotPersist(t *testing.T) {
	initTestLogger(t)
	repo := &fakePlacementRepo{}
	svc := NewConfigService(repo, false)

	result, err := svc.PreviewConfig(context.Background(), dto.ReplaceConfigRequest{
		Pages: []dto.PageLayout{
			{PageNumber: 2, Components: []string{"about", "birthdate"}},
			{PageNumber: 3, Components: []string{"birthdate", "address"}},
		},
	})
	require.NoError(t, err)
	// 宽松策略：birthdate 先被第 2 页认领
	assert.Equal(t, []string{"about", "birthdate"}, result.Pages[0].Components)
	assert.Equal(t, []string{"address"}, result.Pages[1].Components)
	assert.Empty(t, repo.rows)
}
