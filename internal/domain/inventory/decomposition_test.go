package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartcalda-api/internal/domain"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	"github.com/jhoicas/smartcalda-api/internal/domain/inventory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// 75,04 L en envases de 25 L: tres envases completos y 0,04 L desde el fraccionado.
func TestDecompose_EnvasesCompletosYResto(t *testing.T) {
	movs, err := inventory.Decompose(dec("75.04"), dec("25"), entity.TierPrimary, "L")
	require.NoError(t, err)
	require.Len(t, movs, 4)

	for _, m := range movs[:3] {
		assert.True(t, m.Quantity.Equal(dec("25")))
		assert.Equal(t, entity.TierPrimary, m.Source)
		assert.Equal(t, entity.TierTechnical, m.Dest)
		assert.Equal(t, "L", m.Unit)
	}
	last := movs[3]
	assert.True(t, last.Quantity.Equal(dec("0.04")), "resto: %s", last.Quantity)
	assert.Equal(t, entity.TierFractional, last.Source)
	assert.Equal(t, entity.TierTechnical, last.Dest)

	assert.True(t, inventory.SumMovements(movs).Equal(dec("75.04")))
}

func TestDecompose_ElRestoSiempreVieneDelFraccionado(t *testing.T) {
	movs, err := inventory.Decompose(dec("30"), dec("20"), entity.TierFractional, "kg")
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.TierFractional, movs[0].Source)
	assert.Equal(t, entity.TierFractional, movs[1].Source)
	assert.True(t, movs[1].Quantity.Equal(dec("10")))
}

func TestDecompose_MultiploExactoSinResto(t *testing.T) {
	movs, err := inventory.Decompose(dec("50"), dec("25"), entity.TierPrimary, "L")
	require.NoError(t, err)
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.TierPrimary, m.Source)
	}
}

func TestDecompose_SinCapacidadDeEnvase(t *testing.T) {
	for _, capacity := range []string{"0", "-5"} {
		movs, err := inventory.Decompose(dec("12.5"), dec(capacity), entity.TierPrimary, "L")
		require.NoError(t, err)
		require.Len(t, movs, 1)
		assert.True(t, movs[0].Quantity.Equal(dec("12.5")))
		assert.Equal(t, entity.TierPrimary, movs[0].Source)
	}
}

func TestDecompose_MenorQueUnEnvase(t *testing.T) {
	movs, err := inventory.Decompose(dec("3.2"), dec("5"), entity.TierPrimary, "L")
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.TierFractional, movs[0].Source)
}

func TestDecompose_CeroYNegativo(t *testing.T) {
	movs, err := inventory.Decompose(decimal.Zero, dec("25"), entity.TierPrimary, "L")
	require.NoError(t, err)
	assert.Empty(t, movs)

	_, err = inventory.Decompose(dec("-1"), dec("25"), entity.TierPrimary, "L")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = inventory.Decompose(dec("1"), dec("25"), entity.Tier("X"), "L")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La suma de la descomposición reproduce exactamente la cantidad pedida.
// Una capacidad de envase diminuta no puede generar millones de movimientos.
func TestDecompose_TopeDeEnvases(t *testing.T) {
	_, err := inventory.Decompose(dec("1000"), dec("0.0001"), entity.TierPrimary, "L")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	movs, err := inventory.Decompose(dec("10000"), dec("1"), entity.TierPrimary, "L")
	require.NoError(t, err)
	assert.Len(t, movs, inventory.MaxPackageMovements)

	movs, err = inventory.Decompose(dec("10000.5"), dec("1"), entity.TierPrimary, "L")
	require.NoError(t, err)
	assert.Len(t, movs, inventory.MaxPackageMovements+1)

	_, err = inventory.Decompose(dec("10001"), dec("1"), entity.TierPrimary, "L")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDecompose_SumaExacta(t *testing.T) {
	cases := []struct{ qty, capacity string }{
		{"0.001", "1"},
		{"1", "0.3"},
		{"100", "3"},
		{"1376.875", "20"},
		{"999.9999", "0.7"},
		{"10", "10"},
		{"7", "1000"},
	}
	for _, c := range cases {
		movs, err := inventory.Decompose(dec(c.qty), dec(c.capacity), entity.TierPrimary, "L")
		require.NoError(t, err)
		assert.True(t, inventory.SumMovements(movs).Equal(dec(c.qty)), "qty=%s cap=%s", c.qty, c.capacity)
		for _, m := range movs {
			assert.True(t, m.Quantity.IsPositive())
			assert.True(t, m.Quantity.LessThanOrEqual(dec(c.capacity)))
		}
	}
}
