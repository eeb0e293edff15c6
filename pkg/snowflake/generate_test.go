package snowflake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitValidatesBothOperands(t *testing.T) {
	// machineID 和 dataCenterID 各占 5 位，超界都必须在移位前被拒绝
	assert.ErrorIs(t, Init(32, 0), errInvalidMachineID)
	assert.ErrorIs(t, Init(-1, 0), errInvalidMachineID)
	assert.ErrorIs(t, Init(0, 32), errInvalidDataCenterID)
	assert.ErrorIs(t, Init(0, -1), errInvalidDataCenterID)
}

func TestInitAndNextID(t *testing.T) {
	require.NoError(t, Init(1, 1))

	first, err := NextID()
	require.NoError(t, err)
	assert.Positive(t, first)

	second, err := NextID()
	require.NoError(t, err)
	assert.Greater(t, second, first)
}
