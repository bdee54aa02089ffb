package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	"github.com/jhoicas/smartcalda-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo historial append-only de movimientos.
type InventoryMovementRepo struct {
	sc scope
}

func (r *InventoryMovementRepo) Create(_ context.Context, movement *entity.InventoryMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	return r.sc.write(func(st *state) error {
		st.movements = append(st.movements, *movement)
		return nil
	})
}

// ListByItem más recientes primero.
func (r *InventoryMovementRepo) ListByItem(_ context.Context, itemID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	err := r.sc.read(func(st *state) error {
		skipped := 0
		for i := len(st.movements) - 1; i >= 0 && len(out) < limit; i-- {
			m := st.movements[i]
			if m.ItemID != itemID {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			out = append(out, &m)
		}
		return nil
	})
	return out, err
}

func (r *InventoryMovementRepo) ListByParcela(_ context.Context, parcelaID string) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	err := r.sc.read(func(st *state) error {
		for _, m := range st.movements {
			if m.ParcelaID == parcelaID {
				cp := m
				out = append(out, &cp)
			}
		}
		return nil
	})
	return out, err
}
