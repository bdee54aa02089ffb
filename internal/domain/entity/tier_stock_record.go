package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartcalda-api/internal/domain"
)

// TierStockRecord unidad de stock en los tiers técnico o fraccionado.
// Se crea al trasladar stock desde el principal (o entre técnico/fraccionado) y nunca se elimina.
// Invariante: 0 <= AvailableBalance <= MovedQty.
type TierStockRecord struct {
	RecordID         string
	Tier             Tier
	ItemID           string
	LotCode          string
	LocationID       string
	MovedQty         decimal.Decimal
	Unit             string
	AvailableBalance decimal.Decimal
	UsageDate        *time.Time
	SourceTier       Tier
	SourceRef        string
	CreatedAt        time.Time
}

// Debit descuenta quantity del saldo disponible y marca la fecha de uso.
func (r *TierStockRecord) Debit(quantity decimal.Decimal, at time.Time) error {
	if !ValidQuantity(quantity) {
		return domain.ErrInvalidQuantity
	}
	if quantity.GreaterThan(r.AvailableBalance) {
		return domain.ErrInsufficientBalance
	}
	r.AvailableBalance = r.AvailableBalance.Sub(quantity)
	r.UsageDate = &at
	return nil
}
