package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartcalda-api/internal/domain"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
)

func TestEntryKey_StringYParse(t *testing.T) {
	key, err := entity.NewEntryKey(" 000123 ", "ITEM-9", "LOT|A-B;C")
	require.NoError(t, err)
	assert.Equal(t, "000123", key.NoteID)

	parsed, err := entity.ParseEntryKey(key.String())
	require.NoError(t, err)
	assert.Equal(t, key, parsed)
}

func TestEntryKey_NormalizaNFC(t *testing.T) {
	// "é" precompuesta y descompuesta producen la misma clave
	a, err := entity.NewEntryKey("NF", "item", "lot\u00e9")
	require.NoError(t, err)
	b, err := entity.NewEntryKey("NF", "item", "lote\u0301")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEntryKey_Invalida(t *testing.T) {
	_, err := entity.NewEntryKey("", "item", "lot")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = entity.NewEntryKey("NF", "item", "lo\x1ft")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = entity.ParseEntryKey("solo-dos\x1fpartes")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Saldo 4000: retirar 500 y 3500 desactiva el lote; un retiro más falla sin cambiar nada.
func TestStockEntry_Debit(t *testing.T) {
	e := &entity.StockEntry{
		ReceivedQty:    decimal.NewFromInt(4000),
		CurrentBalance: decimal.NewFromInt(4000),
		Active:         true,
	}

	require.NoError(t, e.Debit(decimal.NewFromInt(500)))
	assert.True(t, e.CurrentBalance.Equal(decimal.NewFromInt(3500)))
	assert.True(t, e.Active)

	require.NoError(t, e.Debit(decimal.NewFromInt(3500)))
	assert.True(t, e.CurrentBalance.IsZero())
	assert.False(t, e.Active)
	assert.False(t, e.Withdrawable())

	err := e.Debit(decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.True(t, e.CurrentBalance.IsZero())
}

func TestStockEntry_DebitCantidadInvalida(t *testing.T) {
	e := &entity.StockEntry{CurrentBalance: decimal.NewFromInt(10), Active: true}
	assert.ErrorIs(t, e.Debit(decimal.Zero), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, e.Debit(decimal.NewFromInt(-2)), domain.ErrInvalidQuantity)
	assert.True(t, e.CurrentBalance.Equal(decimal.NewFromInt(10)))
}

// 0.00004 se perdería al guardar en NUMERIC(18,4): se rechaza y el saldo no cambia.
func TestDebit_RechazaMasDeCuatroDecimales(t *testing.T) {
	e := &entity.StockEntry{CurrentBalance: decimal.NewFromInt(1), Active: true}
	assert.ErrorIs(t, e.Debit(decimal.RequireFromString("0.00004")), domain.ErrInvalidQuantity)
	assert.True(t, e.CurrentBalance.Equal(decimal.NewFromInt(1)))

	// ceros a la derecha no cuentan como escala
	require.NoError(t, e.Debit(decimal.RequireFromString("0.250000")))
	assert.True(t, e.CurrentBalance.Equal(decimal.RequireFromString("0.75")))

	r := &entity.TierStockRecord{MovedQty: decimal.NewFromInt(1), AvailableBalance: decimal.NewFromInt(1)}
	at := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	assert.ErrorIs(t, r.Debit(decimal.RequireFromString("0.12345"), at), domain.ErrInvalidQuantity)
	assert.True(t, r.AvailableBalance.Equal(decimal.NewFromInt(1)))
	assert.Nil(t, r.UsageDate)
}

func TestTierStockRecord_Debit(t *testing.T) {
	r := &entity.TierStockRecord{MovedQty: decimal.NewFromInt(20), AvailableBalance: decimal.NewFromInt(20)}
	at := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, r.Debit(decimal.NewFromInt(15), at))
	assert.True(t, r.AvailableBalance.Equal(decimal.NewFromInt(5)))
	require.NotNil(t, r.UsageDate)
	assert.Equal(t, at, *r.UsageDate)

	assert.ErrorIs(t, r.Debit(decimal.NewFromInt(6), at), domain.ErrInsufficientBalance)
	assert.True(t, r.AvailableBalance.Equal(decimal.NewFromInt(5)))
}

func TestTier_ReplenishmentSource(t *testing.T) {
	assert.Equal(t, entity.TierPrimary, entity.TierTechnical.ReplenishmentSource())
	assert.Equal(t, entity.TierFractional, entity.TierFractional.ReplenishmentSource())
	assert.True(t, entity.TierTechnical.Valid())
	assert.False(t, entity.Tier("OTHER").Valid())
}
