package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveFallsBackWhenUnconfigured(t *testing.T) {
	enabled, usedFallback := Resolve(nil)

	assert.True(t, usedFallback)
	assert.Equal(t, []Step{StepAbout, StepBirthdate, StepAddress}, enabled.Slice())
}

func TestResolveUnionsConfiguredRows(t *testing.T) {
	enabled, usedFallback := Resolve([]Placement{
		{PageNumber: 2, Component: "about"},
		{PageNumber: 3, Component: "address"},
	})

	assert.False(t, usedFallback)
	assert.Equal(t, []Step{StepAbout, StepAddress}, enabled.Slice())
	assert.False(t, enabled.Has(StepBirthdate))
}

func TestResolveDirtyRowsYieldEmptySet(t *testing.T) {
	// 行存在但全是未知组件：不是「未配置」，不能退回全启用
	enabled, usedFallback := Resolve([]Placement{
		{PageNumber: 2, Component: "profile_photo"},
	})

	assert.False(t, usedFallback)
	assert.Empty(t, enabled)
}
