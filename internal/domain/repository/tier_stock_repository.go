package repository

import (
	"context"

	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
)

// TierStockRepository define el puerto de persistencia de los registros técnico/fraccionado.
type TierStockRepository interface {
	Create(ctx context.Context, r *entity.TierStockRecord) error
	GetByID(ctx context.Context, recordID string) (*entity.TierStockRecord, error)
	GetForUpdate(ctx context.Context, recordID string) (*entity.TierStockRecord, error)
	// ListAvailable devuelve los registros del tier e ítem con saldo, del más antiguo al más nuevo.
	ListAvailable(ctx context.Context, tier entity.Tier, itemID string) ([]*entity.TierStockRecord, error)
	UpdateBalance(ctx context.Context, r *entity.TierStockRecord) error
}
