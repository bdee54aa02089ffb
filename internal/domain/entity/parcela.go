package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParcelaStatus estado de una carga de camión.
type ParcelaStatus string

const (
	ParcelaOnTruck      ParcelaStatus = "ON_TRUCK"
	ParcelaInProduction ParcelaStatus = "IN_PRODUCTION"
	ParcelaProcessed    ParcelaStatus = "PROCESSED"
	ParcelaPaused       ParcelaStatus = "PAUSED"
	ParcelaBlocked      ParcelaStatus = "BLOCKED"
	ParcelaCancelled    ParcelaStatus = "CANCELLED"
)

// Terminal indica si no se admiten más transiciones.
func (s ParcelaStatus) Terminal() bool {
	return s == ParcelaProcessed || s == ParcelaCancelled
}

// Dispatched indica si la parcela ya fue enviada al supervisorio (cuenta para el progreso de la orden).
func (s ParcelaStatus) Dispatched() bool {
	return s != ParcelaOnTruck && s != ParcelaCancelled
}

// MovedInput cantidad de un insumo que la parcela retira, con su tier de origen y destino.
type MovedInput struct {
	StockRecordID string          `json:"stock_record_id"`
	ItemID        string          `json:"item_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	SourceTier    Tier            `json:"source_tier"`
	DestTier      Tier            `json:"dest_tier"`
	SourceRef     string          `json:"source_ref,omitempty"` // EntryKey del lote principal en envases completos
}

// Parcela carga de camión: fracción de la calda total de una orden.
type Parcela struct {
	ID                   string
	OrderID              string
	MixerID              string
	TruckID              string
	TruckCapacity        decimal.Decimal
	MixProportionPercent decimal.Decimal
	MovedInputs          []MovedInput
	Status               ParcelaStatus
	ProgressShare        decimal.Decimal
	CreatedAt            time.Time
	StartedAt            *time.Time
	FinishedAt           *time.Time
}
