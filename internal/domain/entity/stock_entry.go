package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/smartcalda-api/internal/domain"
)

// entryKeySeparator separa los componentes de EntryKey en su forma textual.
// Es el carácter de control "unit separator"; NewEntryKey rechaza componentes que lo contengan.
const entryKeySeparator = "\x1f"

// EntryKey identidad natural de un lote del almacén principal: (nota fiscal, ítem, lote).
type EntryKey struct {
	NoteID  string
	ItemID  string
	LotCode string
}

// NewEntryKey valida y normaliza (NFC, sin espacios laterales) los componentes de la clave.
func NewEntryKey(noteID, itemID, lotCode string) (EntryKey, error) {
	k := EntryKey{
		NoteID:  normalizeKeyPart(noteID),
		ItemID:  normalizeKeyPart(itemID),
		LotCode: normalizeKeyPart(lotCode),
	}
	for _, part := range []string{k.NoteID, k.ItemID, k.LotCode} {
		if part == "" || strings.Contains(part, entryKeySeparator) {
			return EntryKey{}, domain.ErrInvalidInput
		}
	}
	return k, nil
}

// ParseEntryKey reconstruye una clave desde su forma textual (ver String).
func ParseEntryKey(s string) (EntryKey, error) {
	parts := strings.Split(s, entryKeySeparator)
	if len(parts) != 3 {
		return EntryKey{}, domain.ErrInvalidInput
	}
	return NewEntryKey(parts[0], parts[1], parts[2])
}

// String devuelve la referencia externa estable de la clave.
func (k EntryKey) String() string {
	return k.NoteID + entryKeySeparator + k.ItemID + entryKeySeparator + k.LotCode
}

func normalizeKeyPart(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// StockEntry lote del almacén principal recibido por nota fiscal.
// Invariantes: CurrentBalance >= 0, CurrentBalance <= ReceivedQty y Active == CurrentBalance > 0.
// Nunca se elimina: se desactiva cuando el saldo llega a cero.
type StockEntry struct {
	NoteID          string
	SupplierID      string
	EntryDate       time.Time
	ItemID          string
	LotCode         string
	ReceivedQty     decimal.Decimal
	Unit            string
	ExpiryDate      time.Time // cero = sin vencimiento
	PackageType     string
	PackageCount    int
	PackageCapacity decimal.Decimal
	CurrentBalance  decimal.Decimal
	LocationCode    string
	Active          bool
	Seq             int64 // orden de inserción; desempata FEFO
}

// Key devuelve la identidad natural del lote.
func (e *StockEntry) Key() EntryKey {
	return EntryKey{NoteID: e.NoteID, ItemID: e.ItemID, LotCode: e.LotCode}
}

// Withdrawable indica si el lote puede atender una salida.
func (e *StockEntry) Withdrawable() bool {
	return e.Active && e.CurrentBalance.IsPositive()
}

// Debit descuenta quantity del saldo. No modifica el lote si devuelve error.
func (e *StockEntry) Debit(quantity decimal.Decimal) error {
	if !ValidQuantity(quantity) {
		return domain.ErrInvalidQuantity
	}
	if quantity.GreaterThan(e.CurrentBalance) {
		return domain.ErrInsufficientBalance
	}
	e.CurrentBalance = e.CurrentBalance.Sub(quantity)
	e.Active = e.CurrentBalance.IsPositive()
	return nil
}
