package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKeyDTO identidad natural de un lote principal.
type EntryKeyDTO struct {
	NoteID  string `json:"note_id"`
	ItemID  string `json:"item_id"`
	LotCode string `json:"lot_code"`
}

// WithdrawRequest body para POST /api/inventory/withdrawals.
type WithdrawRequest struct {
	Entry               EntryKeyDTO     `json:"entry"`
	Quantity            decimal.Decimal `json:"quantity"`
	OverrideFefoWarning bool            `json:"override_fefo_warning"`
}

// TransferRequest body para POST /api/inventory/transfers.
// Para origen PRIMARY se informa source_entry; para TECHNICAL/FRACTIONAL source_record_id.
type TransferRequest struct {
	SourceTier          string          `json:"source_tier"`
	SourceEntry         *EntryKeyDTO    `json:"source_entry,omitempty"`
	SourceRecordID      string          `json:"source_record_id,omitempty"`
	DestTier            string          `json:"dest_tier"`
	DestLocation        string          `json:"dest_location"`
	Quantity            decimal.Decimal `json:"quantity"`
	OverrideFefoWarning bool            `json:"override_fefo_warning"`
}

// StockEntryDTO lote del almacén principal.
type StockEntryDTO struct {
	EntryRef        string          `json:"entry_ref"`
	NoteID          string          `json:"note_id"`
	SupplierID      string          `json:"supplier_id"`
	EntryDate       time.Time       `json:"entry_date"`
	ItemID          string          `json:"item_id"`
	LotCode         string          `json:"lot_code"`
	ReceivedQty     decimal.Decimal `json:"received_qty"`
	Unit            string          `json:"unit"`
	ExpiryDate      *time.Time      `json:"expiry_date,omitempty"`
	PackageType     string          `json:"package_type"`
	PackageCount    int             `json:"package_count"`
	PackageCapacity decimal.Decimal `json:"package_capacity"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
	LocationCode    string          `json:"location_code"`
	Active          bool            `json:"active"`
}

// TierStockRecordDTO registro técnico/fraccionado.
type TierStockRecordDTO struct {
	RecordID         string          `json:"record_id"`
	Tier             string          `json:"tier"`
	ItemID           string          `json:"item_id"`
	LotCode          string          `json:"lot_code"`
	LocationID       string          `json:"location_id"`
	MovedQty         decimal.Decimal `json:"moved_qty"`
	Unit             string          `json:"unit"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	UsageDate        *time.Time      `json:"usage_date"`
	SourceTier       string          `json:"source_tier"`
	SourceRef        string          `json:"source_ref"`
}

// InventoryMovementDTO movimiento del ledger.
type InventoryMovementDTO struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	Type          string          `json:"type"`
	ItemID        string          `json:"item_id"`
	LotCode       string          `json:"lot_code"`
	SourceTier    string          `json:"source_tier"`
	SourceRef     string          `json:"source_ref"`
	DestTier      string          `json:"dest_tier,omitempty"`
	DestRef       string          `json:"dest_ref,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	ParcelaID     string          `json:"parcela_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ReplenishmentSuggestionDTO faltante de un registro técnico/fraccionado para completar una orden.
type ReplenishmentSuggestionDTO struct {
	Priority         int             `json:"priority"`
	StockRecordID    string          `json:"stock_record_id"`
	ItemID           string          `json:"item_id"`
	Unit             string          `json:"unit"`
	RecordTier       string          `json:"record_tier"`
	SourceTier       string          `json:"source_tier"`
	RemainingNeed    decimal.Decimal `json:"remaining_need"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	Shortfall        decimal.Decimal `json:"shortfall"`
	PrimaryEntry     string          `json:"primary_entry,omitempty"`
	Movements        []MovedInputDTO `json:"movements"`
}
