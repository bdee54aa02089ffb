package inventory

import (
	"slices"

	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
)

// WithdrawableFEFO filtra los lotes activos con saldo del ítem y los ordena por vencimiento
// ascendente (FEFO). Empates y lotes sin vencimiento (al final) se ordenan por orden de inserción.
// Devuelve un slice nuevo; no modifica entries.
func WithdrawableFEFO(entries []*entity.StockEntry, itemID string) []*entity.StockEntry {
	out := make([]*entity.StockEntry, 0, len(entries))
	for _, e := range entries {
		if e.ItemID == itemID && e.Withdrawable() {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, compareFEFO)
	return out
}

func compareFEFO(a, b *entity.StockEntry) int {
	switch {
	case a.ExpiryDate.IsZero() && !b.ExpiryDate.IsZero():
		return 1
	case !a.ExpiryDate.IsZero() && b.ExpiryDate.IsZero():
		return -1
	case a.ExpiryDate.Before(b.ExpiryDate):
		return -1
	case a.ExpiryDate.After(b.ExpiryDate):
		return 1
	}
	switch {
	case a.Seq < b.Seq:
		return -1
	case a.Seq > b.Seq:
		return 1
	}
	return 0
}

// IsFEFOChoice indica si key corresponde al primer candidato FEFO de la lista.
func IsFEFOChoice(candidates []*entity.StockEntry, key entity.EntryKey) bool {
	if len(candidates) == 0 {
		return false
	}
	return candidates[0].Key() == key
}
