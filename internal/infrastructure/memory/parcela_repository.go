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

var _ repository.ParcelaRepository = (*ParcelaRepo)(nil)

// ParcelaRepo parcelas indexadas por ID.
type ParcelaRepo struct {
	sc scope
}

func (r *ParcelaRepo) Create(_ context.Context, p *entity.Parcela) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.parcelas[p.ID]; ok {
			return fmt.Errorf("%w: parcela duplicada %q", domain.ErrInvalidInput, p.ID)
		}
		st.parcelas[p.ID] = cloneParcela(*p)
		return nil
	})
}

func (r *ParcelaRepo) GetByID(_ context.Context, id string) (*entity.Parcela, error) {
	var out *entity.Parcela
	err := r.sc.read(func(st *state) error {
		p, ok := st.parcelas[id]
		if !ok {
			return fmt.Errorf("parcela: %w", domain.ErrNotFound)
		}
		cp := cloneParcela(p)
		out = &cp
		return nil
	})
	return out, err
}

func (r *ParcelaRepo) GetForUpdate(ctx context.Context, id string) (*entity.Parcela, error) {
	return r.GetByID(ctx, id)
}

func (r *ParcelaRepo) Update(_ context.Context, p *entity.Parcela) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.parcelas[p.ID]; !ok {
			return fmt.Errorf("parcela: %w", domain.ErrNotFound)
		}
		st.parcelas[p.ID] = cloneParcela(*p)
		return nil
	})
}

func (r *ParcelaRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.Parcela, error) {
	var out []*entity.Parcela
	err := r.sc.read(func(st *state) error {
		for _, p := range st.parcelas {
			if p.OrderID == orderID {
				cp := cloneParcela(p)
				out = append(out, &cp)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *entity.Parcela) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, err
}
