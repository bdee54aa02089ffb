package repository

import (
	"context"

	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
)

// ParcelaRepository define el puerto de persistencia de parcelas.
type ParcelaRepository interface {
	Create(ctx context.Context, p *entity.Parcela) error
	GetByID(ctx context.Context, id string) (*entity.Parcela, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Parcela, error)
	Update(ctx context.Context, p *entity.Parcela) error
	// ListByOrder devuelve las parcelas de la orden por fecha de creación.
	ListByOrder(ctx context.Context, orderID string) ([]*entity.Parcela, error)
}
