package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderPlotDTO talhão de la orden.
type OrderPlotDTO struct {
	FarmID string `json:"farm_id"`
	PlotID string `json:"plot_id"`
}

// OrderInputDTO insumo de la orden.
type OrderInputDTO struct {
	StockRecordID string          `json:"stock_record_id"`
	ItemID        string          `json:"item_id"`
	DosePerHa     decimal.Decimal `json:"dose_per_ha"`
}

// OrderRequest body para POST/PUT /api/orders.
type OrderRequest struct {
	OrderNumber   string          `json:"order_number"`
	CostCenterID  string          `json:"cost_center_id"`
	OperationID   string          `json:"operation_id"`
	GeneratedDate *time.Time      `json:"generated_date,omitempty"`
	ResponsibleID string          `json:"responsible_id"`
	FarmID        string          `json:"farm_id"`
	Section       string          `json:"section"`
	Plots         []OrderPlotDTO  `json:"plots"`
	Inputs        []OrderInputDTO `json:"inputs"`
	CaldaPerHa    decimal.Decimal `json:"calda_per_ha"`
}

// OrderResponse orden de servicio con sus parcelas.
type OrderResponse struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"order_number"`
	CostCenterID    string          `json:"cost_center_id"`
	OperationID     string          `json:"operation_id"`
	GeneratedDate   time.Time       `json:"generated_date"`
	ResponsibleID   string          `json:"responsible_id"`
	FarmID          string          `json:"farm_id"`
	Section         string          `json:"section"`
	Plots           []OrderPlotDTO  `json:"plots"`
	Inputs          []OrderInputDTO `json:"inputs"`
	CaldaPerHa      decimal.Decimal `json:"calda_per_ha"`
	Status          string          `json:"status"`
	ProgressPercent decimal.Decimal `json:"progress_percent"`
	StartedAt       *time.Time      `json:"started_at"`
	FinishedAt      *time.Time      `json:"finished_at"`
	Parcelas        []ParcelaDTO    `json:"parcelas,omitempty"`
}
