package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/jhoicas/smartcalda-api/internal/domain"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	"github.com/jhoicas/smartcalda-api/internal/domain/repository"
)

var _ repository.StockEntryRepository = (*StockEntryRepo)(nil)

// StockEntryRepo lotes del almacén principal indexados por EntryKey.
type StockEntryRepo struct {
	sc scope
}

// Create registra el lote y le asigna el orden de inserción. Clave repetida -> ErrInvalidInput.
func (r *StockEntryRepo) Create(_ context.Context, e *entity.StockEntry) error {
	return r.sc.write(func(st *state) error {
		key := e.Key()
		if _, ok := st.entries[key]; ok {
			return fmt.Errorf("%w: lote duplicado %q", domain.ErrInvalidInput, key.String())
		}
		st.seq++
		e.Seq = st.seq
		e.Active = e.CurrentBalance.IsPositive()
		st.entries[key] = *e
		return nil
	})
}

// Get obtiene una copia del lote.
func (r *StockEntryRepo) Get(_ context.Context, key entity.EntryKey) (*entity.StockEntry, error) {
	var out *entity.StockEntry
	err := r.sc.read(func(st *state) error {
		e, ok := st.entries[key]
		if !ok {
			return fmt.Errorf("stock entry: %w", domain.ErrNotFound)
		}
		out = &e
		return nil
	})
	return out, err
}

// GetForUpdate equivale a Get: dentro de TxRunner el store ya está bloqueado.
func (r *StockEntryRepo) GetForUpdate(ctx context.Context, key entity.EntryKey) (*entity.StockEntry, error) {
	return r.Get(ctx, key)
}

// ListByItem devuelve los lotes del ítem por orden de inserción.
func (r *StockEntryRepo) ListByItem(_ context.Context, itemID string) ([]*entity.StockEntry, error) {
	var out []*entity.StockEntry
	err := r.sc.read(func(st *state) error {
		for _, e := range st.entries {
			if e.ItemID == itemID {
				cp := e
				out = append(out, &cp)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *entity.StockEntry) int { return cmp.Compare(a.Seq, b.Seq) })
	return out, err
}

// UpdateBalance persiste CurrentBalance y Active.
func (r *StockEntryRepo) UpdateBalance(_ context.Context, e *entity.StockEntry) error {
	return r.sc.write(func(st *state) error {
		key := e.Key()
		cur, ok := st.entries[key]
		if !ok {
			return fmt.Errorf("stock entry: %w", domain.ErrNotFound)
		}
		cur.CurrentBalance = e.CurrentBalance
		cur.Active = e.CurrentBalance.IsPositive()
		st.entries[key] = cur
		return nil
	})
}
