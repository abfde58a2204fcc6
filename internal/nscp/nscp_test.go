package nscp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEc(t *testing.T) {
	assert.InDelta(t, 4700*5.0, Ec(25), 1e-9)
	assert.Zero(t, Ec(0))
}

func TestShearModulus(t *testing.T) {
	assert.InDelta(t, 200000/2.6, ShearModulus(Es, NuSteel), 1e-9)
}

func TestFactor(t *testing.T) {
	u3 := LoadCombinations[2]
	assert.Equal(t, 1.2, u3.Factor(Dead))
	assert.Equal(t, 1.6, u3.Factor(Roof))
	assert.Equal(t, 0.5, u3.Factor(Wind))
	assert.Zero(t, u3.Factor(Earthquake))
	assert.Zero(t, u3.Factor("X"))
	assert.Equal(t, "U3: 1.2D + 1.6(Lr or R) + (1.0L or 0.5W)", u3.Name())
}

func TestTable(t *testing.T) {
	tbl, err := Table("simplified")
	require.NoError(t, err)
	assert.Len(t, tbl, 2)

	tbl, err = Table("nscp")
	require.NoError(t, err)
	assert.Len(t, tbl, 7)

	_, err = Table("eurocode")
	require.Error(t, err)

	assert.True(t, ValidCategory(Roof))
	assert.False(t, ValidCategory("S"))
}
