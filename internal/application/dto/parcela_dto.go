package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParcelaRequest body para crear (POST /api/orders/:id/parcelas), previsualizar o editar una parcela.
// Dispatch=true equivale a "enviar al supervisorio" en la creación.
// primary_entries elige el lote principal por ítem; uno que no sea el primero FEFO
// requiere override_fefo_warning=true.
type ParcelaRequest struct {
	MixerID             string          `json:"mixer_id"`
	TruckID             string          `json:"truck_id"`
	TruckCapacity       decimal.Decimal `json:"truck_capacity"`
	Dispatch            bool            `json:"dispatch"`
	PrimaryEntries      []EntryKeyDTO   `json:"primary_entries,omitempty"`
	OverrideFefoWarning bool            `json:"override_fefo_warning"`
}

// MovedInputDTO movimiento de insumo de una parcela.
type MovedInputDTO struct {
	StockRecordID string          `json:"stock_record_id"`
	ItemID        string          `json:"item_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	SourceTier    string          `json:"source_tier"`
	DestTier      string          `json:"dest_tier"`
	SourceRef     string          `json:"source_ref,omitempty"`
}

// ParcelaDTO carga de camión.
type ParcelaDTO struct {
	ID                   string          `json:"id"`
	OrderID              string          `json:"order_id"`
	MixerID              string          `json:"mixer_id"`
	TruckID              string          `json:"truck_id"`
	TruckCapacity        decimal.Decimal `json:"truck_capacity"`
	MixProportionPercent decimal.Decimal `json:"mix_proportion_percent"`
	MovedInputs          []MovedInputDTO `json:"moved_inputs"`
	Status               string          `json:"status"`
	ProgressShare        decimal.Decimal `json:"progress_share"`
	CreatedAt            time.Time       `json:"created_at"`
	StartedAt            *time.Time      `json:"started_at"`
	FinishedAt           *time.Time      `json:"finished_at"`
}

// InputPlanDTO cálculo por insumo de una carga.
type InputPlanDTO struct {
	StockRecordID string          `json:"stock_record_id"`
	ItemID        string          `json:"item_id"`
	InputTotal    decimal.Decimal `json:"input_total"`
	Quantity      decimal.Decimal `json:"quantity"`
	SourceTier    string          `json:"source_tier"`
	PrimaryEntry  string          `json:"primary_entry,omitempty"`
	Movements     []MovedInputDTO `json:"movements"`
}

// ParcelaPlanDTO resultado de POST /api/orders/:id/parcelas/preview.
type ParcelaPlanDTO struct {
	TotalArea         decimal.Decimal `json:"total_area"`
	TotalMixRequired  decimal.Decimal `json:"total_mix_required"`
	ProportionPercent decimal.Decimal `json:"proportion_percent"`
	Inputs            []InputPlanDTO  `json:"inputs"`
}
