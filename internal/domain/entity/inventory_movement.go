package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del ledger.
const (
	MovementTypeWithdraw = "WITHDRAW" // salida directa de un lote principal
	MovementTypeTransfer = "TRANSFER" // traslado entre tiers
	MovementTypeConsume  = "CONSUME"  // consumo de stock técnico/fraccionado al despachar una parcela
)

// InventoryMovement registro de auditoría de cada operación que altera saldos.
// SourceRef/DestRef referencian EntryKey.String() para el tier principal y RecordID para los demás.
type InventoryMovement struct {
	ID            string
	TransactionID string
	Type          string
	ItemID        string
	LotCode       string
	SourceTier    Tier
	SourceRef     string
	DestTier      Tier // vacío en salidas y consumos
	DestRef       string
	Quantity      decimal.Decimal
	Unit          string
	ParcelaID     string
	CreatedAt     time.Time
}
