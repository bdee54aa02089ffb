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

var testAreas = []decimal.Decimal{dec("250.25"), dec("300.50")}

func testInputs() []inventory.CaldaInput {
	return []inventory.CaldaInput{
		{StockRecordID: "rec-tec", ItemID: "herbicida", DosePerHa: dec("2"), RecordTier: entity.TierTechnical, Unit: "L"},
		{StockRecordID: "rec-frac", ItemID: "adjuvante", DosePerHa: dec("0.1"), RecordTier: entity.TierFractional, Unit: "L"},
	}
}

// Camión sobredimensionado: la carga nunca representa más que la orden completa.
func TestComputeAllocation_TopeEnCien(t *testing.T) {
	alloc, err := inventory.ComputeAllocation(testAreas, dec("2.5"), testInputs(), dec("13000"))
	require.NoError(t, err)

	assert.True(t, alloc.TotalArea.Equal(dec("550.75")))
	assert.True(t, alloc.TotalMixRequired.Equal(dec("1376.875")))
	assert.True(t, alloc.ProportionPercent.Equal(dec("100")))

	require.Len(t, alloc.Inputs, 2)
	assert.True(t, alloc.Inputs[0].InputTotal.Equal(dec("1101.5")))
	assert.True(t, alloc.Inputs[0].Quantity.Equal(dec("1101.5")))
	assert.True(t, alloc.Inputs[1].Quantity.Equal(dec("55.075")))
}

func TestComputeAllocation_Proporcional(t *testing.T) {
	// 100 ha * 10 L/ha = 1000 L; camión de 250 L -> 25%.
	alloc, err := inventory.ComputeAllocation([]decimal.Decimal{dec("100")}, dec("10"), testInputs(), dec("250"))
	require.NoError(t, err)
	assert.True(t, alloc.ProportionPercent.Equal(dec("25")))

	per := alloc.PerInputQuantity()
	assert.True(t, per["rec-tec"].Equal(dec("50")))   // 100*2*0.25
	assert.True(t, per["rec-frac"].Equal(dec("2.5"))) // 100*0.1*0.25
}

func TestComputeAllocation_TierDeOrigen(t *testing.T) {
	alloc, err := inventory.ComputeAllocation(testAreas, dec("2.5"), testInputs(), dec("500"))
	require.NoError(t, err)
	assert.Equal(t, entity.TierPrimary, alloc.Inputs[0].SourceTier)
	assert.Equal(t, entity.TierFractional, alloc.Inputs[1].SourceTier)
}

func TestComputeAllocation_SinCaldaProporcionCero(t *testing.T) {
	alloc, err := inventory.ComputeAllocation(testAreas, decimal.Zero, testInputs(), dec("500"))
	require.NoError(t, err)
	assert.True(t, alloc.ProportionPercent.IsZero())
	for _, in := range alloc.Inputs {
		assert.True(t, in.Quantity.IsZero())
	}

	alloc, err = inventory.ComputeAllocation(nil, dec("2.5"), testInputs(), dec("500"))
	require.NoError(t, err)
	assert.True(t, alloc.ProportionPercent.IsZero())
}

// Para toda capacidad >= 0 la proporción queda en [0, 100].
func TestComputeAllocation_ProporcionAcotada(t *testing.T) {
	for _, capacity := range []string{"0", "0.01", "1", "688.4375", "1376.875", "1376.876", "5000", "1000000"} {
		alloc, err := inventory.ComputeAllocation(testAreas, dec("2.5"), testInputs(), dec(capacity))
		require.NoError(t, err)
		assert.False(t, alloc.ProportionPercent.IsNegative(), capacity)
		assert.True(t, alloc.ProportionPercent.LessThanOrEqual(dec("100")), capacity)
	}
}

func TestComputeAllocation_EntradasNegativas(t *testing.T) {
	_, err := inventory.ComputeAllocation(testAreas, dec("2.5"), testInputs(), dec("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = inventory.ComputeAllocation([]decimal.Decimal{dec("-3")}, dec("2.5"), testInputs(), dec("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}
