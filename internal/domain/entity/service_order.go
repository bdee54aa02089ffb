package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado agregado de una orden de servicio.
type OrderStatus string

const (
	OrderAwaitingInfo  OrderStatus = "AWAITING_INFO"  // faltan datos obligatorios
	OrderPending       OrderStatus = "PENDING"        // completa, sin parcelas
	OrderInPreparation OrderStatus = "IN_PREPARATION" // parcelas guardadas, ninguna despachada
	OrderNotTotaled    OrderStatus = "NOT_TOTALED"    // despachada parcialmente (< 100%)
	OrderFinalized     OrderStatus = "FINALIZED"      // 100% despachado
)

// Editable indica si la orden acepta cambios de cabecera.
func (s OrderStatus) Editable() bool {
	return s == OrderAwaitingInfo || s == OrderPending
}

// OrderPlot talhão incluido en la orden.
type OrderPlot struct {
	FarmID string `json:"farm_id"`
	PlotID string `json:"plot_id"`
}

// OrderInput insumo requerido por la orden con su dosis por hectárea.
// StockRecordID referencia el TierStockRecord (técnico o fraccionado) desde el que se consume.
type OrderInput struct {
	StockRecordID string          `json:"stock_record_id"`
	ItemID        string          `json:"item_id"`
	DosePerHa     decimal.Decimal `json:"dose_per_ha"`
}

// ServiceOrder orden de servicio de pulverización.
// Invariante: ProgressPercent == min(suma de ProgressShare de las parcelas despachadas no canceladas, 100).
type ServiceOrder struct {
	ID              string
	OrderNumber     string
	CostCenterID    string
	OperationID     string
	GeneratedDate   time.Time
	ResponsibleID   string
	FarmID          string
	Section         string
	Plots           []OrderPlot
	Inputs          []OrderInput
	CaldaPerHa      decimal.Decimal
	Status          OrderStatus
	ProgressPercent decimal.Decimal
	StartedAt       *time.Time
	FinishedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Complete indica si la orden tiene los datos mínimos para generar parcelas.
func (o *ServiceOrder) Complete() bool {
	return o.CaldaPerHa.IsPositive() && len(o.Plots) > 0 && len(o.Inputs) > 0
}
