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

var _ repository.ServiceOrderRepository = (*ServiceOrderRepo)(nil)

// ServiceOrderRepo órdenes de servicio indexadas por ID.
type ServiceOrderRepo struct {
	sc scope
}

func (r *ServiceOrderRepo) Create(_ context.Context, o *entity.ServiceOrder) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.orders[o.ID]; ok {
			return fmt.Errorf("%w: orden duplicada %q", domain.ErrInvalidInput, o.ID)
		}
		for _, existing := range st.orders {
			if existing.OrderNumber == o.OrderNumber {
				return fmt.Errorf("%w: número de orden %q ya existe", domain.ErrInvalidInput, o.OrderNumber)
			}
		}
		st.orders[o.ID] = cloneOrder(*o)
		return nil
	})
}

func (r *ServiceOrderRepo) GetByID(_ context.Context, id string) (*entity.ServiceOrder, error) {
	var out *entity.ServiceOrder
	err := r.sc.read(func(st *state) error {
		o, ok := st.orders[id]
		if !ok {
			return fmt.Errorf("service order: %w", domain.ErrNotFound)
		}
		cp := cloneOrder(o)
		out = &cp
		return nil
	})
	return out, err
}

func (r *ServiceOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.ServiceOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *ServiceOrderRepo) Update(_ context.Context, o *entity.ServiceOrder) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.orders[o.ID]; !ok {
			return fmt.Errorf("service order: %w", domain.ErrNotFound)
		}
		st.orders[o.ID] = cloneOrder(*o)
		return nil
	})
}

// List ordenadas por fecha de generación descendente.
func (r *ServiceOrderRepo) List(_ context.Context, limit, offset int) ([]*entity.ServiceOrder, error) {
	var all []*entity.ServiceOrder
	err := r.sc.read(func(st *state) error {
		for _, o := range st.orders {
			cp := cloneOrder(o)
			all = append(all, &cp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(all, func(a, b *entity.ServiceOrder) int {
		if c := b.GeneratedDate.Compare(a.GeneratedDate); c != 0 {
			return c
		}
		return strings.Compare(a.OrderNumber, b.OrderNumber)
	})
	if offset >= len(all) {
		return []*entity.ServiceOrder{}, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}
