package repository

import (
	"context"

	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
)

// ServiceOrderRepository define el puerto de persistencia de órdenes de servicio.
type ServiceOrderRepository interface {
	Create(ctx context.Context, o *entity.ServiceOrder) error
	GetByID(ctx context.Context, id string) (*entity.ServiceOrder, error)
	GetForUpdate(ctx context.Context, id string) (*entity.ServiceOrder, error)
	Update(ctx context.Context, o *entity.ServiceOrder) error
	List(ctx context.Context, limit, offset int) ([]*entity.ServiceOrder, error)
}
