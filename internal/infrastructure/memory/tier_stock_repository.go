package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jhoicas/smartcalda-api/internal/domain"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	"github.com/jhoicas/smartcalda-api/internal/domain/repository"
)

var _ repository.TierStockRepository = (*TierStockRepo)(nil)

// TierStockRepo registros técnico/fraccionado indexados por RecordID.
type TierStockRepo struct {
	sc scope
}

func (r *TierStockRepo) Create(_ context.Context, rec *entity.TierStockRecord) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.records[rec.RecordID]; ok {
			return fmt.Errorf("%w: registro duplicado %q", domain.ErrInvalidInput, rec.RecordID)
		}
		st.records[rec.RecordID] = *rec
		return nil
	})
}

func (r *TierStockRepo) GetByID(_ context.Context, recordID string) (*entity.TierStockRecord, error) {
	var out *entity.TierStockRecord
	err := r.sc.read(func(st *state) error {
		rec, ok := st.records[recordID]
		if !ok {
			return fmt.Errorf("tier record: %w", domain.ErrNotFound)
		}
		out = &rec
		return nil
	})
	return out, err
}

func (r *TierStockRepo) GetForUpdate(ctx context.Context, recordID string) (*entity.TierStockRecord, error) {
	return r.GetByID(ctx, recordID)
}

func (r *TierStockRepo) ListAvailable(_ context.Context, tier entity.Tier, itemID string) ([]*entity.TierStockRecord, error) {
	var out []*entity.TierStockRecord
	err := r.sc.read(func(st *state) error {
		for _, rec := range st.records {
			if rec.Tier == tier && (itemID == "" || rec.ItemID == itemID) && rec.AvailableBalance.IsPositive() {
				cp := rec
				out = append(out, &cp)
			}
		}
		return nil
	})
	slices.SortStableFunc(out, func(a, b *entity.TierStockRecord) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.RecordID, b.RecordID)
	})
	return out, err
}

func (r *TierStockRepo) UpdateBalance(_ context.Context, rec *entity.TierStockRecord) error {
	return r.sc.write(func(st *state) error {
		cur, ok := st.records[rec.RecordID]
		if !ok {
			return fmt.Errorf("tier record: %w", domain.ErrNotFound)
		}
		cur.AvailableBalance = rec.AvailableBalance
		cur.UsageDate = rec.UsageDate
		st.records[rec.RecordID] = cur
		return nil
	})
}
